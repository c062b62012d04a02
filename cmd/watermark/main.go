package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/muhaimin059/dct-watermark/watermark"
)

func main() {
	fmt.Println("DCT Watermark Codec")
	fmt.Println("Embeds/extracts a short text payload into a 512x512 image")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Println()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "embed":
		err = runEmbed(os.Args[2:])
	case "extract":
		err = runExtract(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("\nFailed: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  watermark embed   -in <cover.png|jpg> -out <out.png> -text <payload> [-k parity] [-alpha opacity]")
	fmt.Println("  watermark extract -in <stego.png|jpg>")
}

func runEmbed(args []string) error {
	var inPath, outPath, text string
	k := watermark.DefaultParityBytes
	alpha := watermark.DefaultOpacity

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-in":
			i++
			inPath = args[i]
		case "-out":
			i++
			outPath = args[i]
		case "-text":
			i++
			text = args[i]
		case "-k":
			i++
			v, err := strconv.Atoi(args[i])
			if err != nil {
				return fmt.Errorf("parsing -k: %w", err)
			}
			k = v
		case "-alpha":
			i++
			v, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return fmt.Errorf("parsing -alpha: %w", err)
			}
			alpha = v
		}
	}
	if inPath == "" || outPath == "" {
		return fmt.Errorf("embed requires -in and -out")
	}

	fmt.Printf("Reading cover image: %s\n", inPath)
	img, err := loadImage(inPath)
	if err != nil {
		return fmt.Errorf("reading cover image: %w", err)
	}

	params := watermark.DefaultParameters()
	params.ParityBytes = k
	params.Opacity = alpha
	wm, err := watermark.New(params)
	if err != nil {
		return fmt.Errorf("constructing codec: %w", err)
	}

	fmt.Printf("Capacity: %d characters (b=%d, k=%d)\n", wm.Capacity().MaxTextLen, params.BitBoxSize, params.ParityBytes)
	fmt.Printf("Embedding text: %q\n", text)

	if err := wm.EmbedText(img, text); err != nil {
		return fmt.Errorf("embedding: %w", err)
	}

	fmt.Printf("Writing watermarked image: %s\n", outPath)
	if err := saveImage(outPath, img.StandardImage()); err != nil {
		return fmt.Errorf("writing output image: %w", err)
	}

	fmt.Println("\nDone.")
	return nil
}

func runExtract(args []string) error {
	var inPath string
	for i := 0; i < len(args); i++ {
		if args[i] == "-in" {
			i++
			inPath = args[i]
		}
	}
	if inPath == "" {
		return fmt.Errorf("extract requires -in")
	}

	fmt.Printf("Reading image: %s\n", inPath)
	img, err := loadImage(inPath)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	wm, err := watermark.New(watermark.DefaultParameters())
	if err != nil {
		return fmt.Errorf("constructing codec: %w", err)
	}

	text, err := wm.ExtractText(img)
	if err != nil {
		return fmt.Errorf("extracting: %w", err)
	}

	fmt.Printf("\nExtracted text: %q\n", text)
	return nil
}

// loadImage decodes a PNG or JPEG file by extension and wraps it as a
// watermark.Image; JPEG/PNG decode is an explicit out-of-scope
// collaborator, owned entirely by this driver.
func loadImage(path string) (*watermark.RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var decoded image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		decoded, err = png.Decode(f)
	case ".jpg", ".jpeg":
		decoded, err = jpeg.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported extension %q (want .png, .jpg, .jpeg)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return watermark.WrapImage(decoded), nil
}

func saveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(f, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		return fmt.Errorf("unsupported extension %q (want .png, .jpg, .jpeg)", filepath.Ext(path))
	}
}
