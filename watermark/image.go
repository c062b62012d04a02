package watermark

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Image is the per-pixel RGB getter/setter the codec drives. Image
// encoding/decoding is delegated to callers.
type Image interface {
	Bounds() (width, height int)
	At(x, y int) (r, g, b uint8)
	Set(x, y int, r, g, b uint8)
}

// RGBAImage is the concrete Image adapter around the standard library's
// image package; JPEG/PNG decode and encode are owned by callers (see
// cmd/watermark).
type RGBAImage struct {
	img *image.RGBA
}

// NewRGBAImage returns a blank (all-black, fully opaque) canvas.
func NewRGBAImage(width, height int) *RGBAImage {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return &RGBAImage{img: img}
}

// WrapImage normalizes an arbitrary decoded image (image.Gray, image.YCbCr,
// image.Paletted, ...) into an RGBA-backed Image by drawing it onto a
// fresh canvas, so the codec never has to special-case color models.
func WrapImage(src image.Image) *RGBAImage {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &RGBAImage{img: dst}
}

// Bounds returns the image dimensions.
func (r *RGBAImage) Bounds() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// At returns the RGB triple at (x, y).
func (r *RGBAImage) At(x, y int) (uint8, uint8, uint8) {
	c := r.img.RGBAAt(x, y)
	return c.R, c.G, c.B
}

// Set writes the RGB triple at (x, y), preserving full opacity.
func (r *RGBAImage) Set(x, y int, red, green, blue uint8) {
	r.img.SetRGBA(x, y, color.RGBA{R: red, G: green, B: blue, A: 255})
}

// StandardImage exposes the underlying image.Image for callers that want
// to hand it to image/png or image/jpeg.
func (r *RGBAImage) StandardImage() image.Image {
	return r.img
}

func ceilMultiple(v, block int) int {
	return ((v + block - 1) / block) * block
}

// padToBlockMultiple builds a new RGBAImage padded up to a multiple of
// block in each dimension. Pixels outside the original bounds are left
// at the canvas's zero value (opaque black), matching the zero-fill
// convention JPEG block extraction uses for the final partial MCU.
func padToBlockMultiple(img Image, block int) (*RGBAImage, int, int) {
	w, h := img.Bounds()
	pw, ph := ceilMultiple(w, block), ceilMultiple(h, block)
	padded := NewRGBAImage(pw, ph)

	if src, ok := img.(*RGBAImage); ok {
		draw.Draw(padded.img, src.img.Bounds(), src.img, image.Point{}, draw.Src)
		return padded, pw, ph
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rr, gg, bb := img.At(x, y)
			padded.Set(x, y, rr, gg, bb)
		}
	}
	return padded, pw, ph
}

// rgbToHSB converts an 8-bit RGB triple to hue/saturation/brightness, each
// in [0, 1], using the same algorithm as java.awt.Color.RGBtoHSB (the
// reference this watermark format was originally specified against).
func rgbToHSB(r, g, b uint8) (hue, saturation, brightness float64) {
	cmax := maxu8(r, g, b)
	cmin := minu8(r, g, b)
	brightness = float64(cmax) / 255.0

	if cmax != cmin {
		saturation = float64(cmax-cmin) / float64(cmax)
	}

	if saturation == 0 {
		hue = 0
	} else {
		diff := float64(cmax - cmin)
		redc := float64(cmax-r) / diff
		greenc := float64(cmax-g) / diff
		bluec := float64(cmax-b) / diff

		switch {
		case r == cmax:
			hue = bluec - greenc
		case g == cmax:
			hue = 2.0 + redc - bluec
		default:
			hue = 4.0 + greenc - redc
		}
		hue /= 6.0
		if hue < 0 {
			hue += 1.0
		}
	}
	return hue, saturation, brightness
}

// hsbToRGB is the inverse of rgbToHSB, matching
// java.awt.Color.HSBtoRGB.
func hsbToRGB(hue, saturation, brightness float64) (r, g, b uint8) {
	if saturation == 0 {
		v := clampToByte(brightness*255.0 + 0.5)
		return v, v, v
	}

	h := (hue - math.Floor(hue)) * 6.0
	f := h - math.Floor(h)
	p := brightness * (1.0 - saturation)
	q := brightness * (1.0 - saturation*f)
	t := brightness * (1.0 - saturation*(1.0-f))

	var rf, gf, bf float64
	switch int(h) {
	case 0:
		rf, gf, bf = brightness, t, p
	case 1:
		rf, gf, bf = q, brightness, p
	case 2:
		rf, gf, bf = p, brightness, t
	case 3:
		rf, gf, bf = p, q, brightness
	case 4:
		rf, gf, bf = t, p, brightness
	default:
		rf, gf, bf = brightness, p, q
	}

	return clampToByte(rf*255.0 + 0.5), clampToByte(gf*255.0 + 0.5), clampToByte(bf*255.0 + 0.5)
}

func clampToByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func maxu8(a, b, c uint8) uint8 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func minu8(a, b, c uint8) uint8 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
