package watermark

import (
	"bytes"
	"image/jpeg"
	"testing"
)

// defaultTestParameters mirrors the codec's own defaults: b=10, k=6,
// s1=24, s2=19. Opacity is pinned at 1.0 (the Parameters default, and the
// value needed for an exact in-memory round trip); tests that need the
// blended 0.6 opacity say so explicitly.
func defaultTestParameters() Parameters {
	return DefaultParameters()
}

func midGrayImage(w, h int) *RGBAImage {
	img := NewRGBAImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, 128, 128, 128)
		}
	}
	return img
}

func TestHelloWorldTextRoundTrip(t *testing.T) {
	wm, err := New(defaultTestParameters())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img := midGrayImage(512, 512)
	if err := wm.EmbedText(img, "hello world"); err != nil {
		t.Fatalf("EmbedText: %v", err)
	}
	got, err := wm.ExtractText(img)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %q, want %q", got, "hello world")
	}
}

// TestTruncatesOverCapacity exercises normalize-then-truncate: the input
// normalizes (lower-case, non-alphabet runes stripped) to a string
// longer than the codec's MaxTextLen, so only its prefix survives the
// round trip. The input is sized to overflow the derived capacity for
// the default parameters (b=10, k=6) regardless of the exact figure.
func TestTruncatesOverCapacity(t *testing.T) {
	wm, err := New(defaultTestParameters())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	maxTextLen := wm.Capacity().MaxTextLen

	normalized := normalize("¡This is a TEST of truncation behavior in the codec!")
	want := []rune(normalized)[:maxTextLen]

	img := midGrayImage(512, 512)
	if err := wm.EmbedText(img, "¡This is a TEST of truncation behavior in the codec!"); err != nil {
		t.Fatalf("EmbedText: %v", err)
	}
	got, err := wm.ExtractText(img)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	wantTrimmed := trimTrailingSpaces(string(want))
	if got != wantTrimmed {
		t.Errorf("got %q, want %q", got, wantTrimmed)
	}
}

func trimTrailingSpaces(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == ' ' {
		i--
	}
	return s[:i]
}

func TestEmptyStringRoundTrip(t *testing.T) {
	wm, err := New(defaultTestParameters())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img := midGrayImage(512, 512)
	if err := wm.EmbedText(img, ""); err != nil {
		t.Fatalf("EmbedText: %v", err)
	}
	got, err := wm.ExtractText(img)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestSurvivesJPEGRecompression(t *testing.T) {
	wm, err := New(defaultTestParameters())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img := midGrayImage(512, 512)
	if err := wm.EmbedText(img, "abc"); err != nil {
		t.Fatalf("EmbedText: %v", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img.StandardImage(), &jpeg.Options{Quality: 85}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	decoded, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("jpeg.Decode: %v", err)
	}
	reloaded := WrapImage(decoded)

	got, err := wm.ExtractText(reloaded)
	if err != nil {
		t.Fatalf("ExtractText after JPEG round trip: %v", err)
	}
	if got != "abc" {
		t.Errorf("got %q, want %q (JPEG quality 85 recompression)", got, "abc")
	}
}

func TestRSCorrectsThreeFlippedBytes(t *testing.T) {
	wm, err := New(defaultTestParameters())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img := midGrayImage(512, 512)
	if err := wm.EmbedText(img, "abc"); err != nil {
		t.Fatalf("EmbedText: %v", err)
	}
	if _, err := wm.ExtractData(img); err != nil {
		t.Fatalf("ExtractData: %v", err)
	}

	// ExtractData returns post-RS-correction bits, so flip bytes of the
	// raw codeword directly to exercise the RS layer's correction
	// capacity in isolation.
	raw, err := midGrayRSCodeword(wm, "abc")
	if err != nil {
		t.Fatalf("midGrayRSCodeword: %v", err)
	}
	corrupted := append([]byte(nil), raw...)
	corrupted[0] ^= 0x01
	corrupted[1] ^= 0x01
	corrupted[2] ^= 0x01
	data, err := wm.rs().Decode(corrupted, wm.params.ParityBytes)
	if err != nil {
		t.Fatalf("Decode with 3 flipped bytes: %v", err)
	}
	text, err := decodeText(BitBufferFromBytes(data), wm.capacity.MaxTextLen)
	if err != nil {
		t.Fatalf("decodeText: %v", err)
	}
	if text != "abc" {
		t.Errorf("got %q, want %q", text, "abc")
	}

	for i := range corrupted {
		corrupted[i] ^= 0xFF
	}
	if _, err := wm.rs().Decode(corrupted, wm.params.ParityBytes); err == nil {
		t.Error("expected Uncorrectable when every byte is flipped")
	}
}

// midGrayRSCodeword re-derives the raw RS codeword bytes for a text
// payload under wm's parameters, for tests that want to corrupt it
// directly rather than going through image pixels.
func midGrayRSCodeword(wm *Watermark, text string) ([]byte, error) {
	bits := encodeText(text, wm.capacity.MaxTextLen)
	dataBits := bits.PadOrTruncate(wm.capacity.MaxBitsData)
	codeword, err := rsEncodeBits(wm.rs(), dataBits, wm.params.ParityBytes)
	if err != nil {
		return nil, err
	}
	return codeword.Bytes()
}

func TestMismatchedSeedFailsToRecover(t *testing.T) {
	p1 := defaultTestParameters()
	p2 := defaultTestParameters()
	p2.SeedEmbedding = 1234

	wm1, err := New(p1)
	if err != nil {
		t.Fatalf("New wm1: %v", err)
	}
	wm2, err := New(p2)
	if err != nil {
		t.Fatalf("New wm2: %v", err)
	}

	img := midGrayImage(512, 512)
	if err := wm1.EmbedText(img, "hello world"); err != nil {
		t.Fatalf("EmbedText: %v", err)
	}

	got, err := wm2.ExtractText(img)
	if err == nil && got == "hello world" {
		t.Error("extraction with mismatched seed unexpectedly recovered the payload")
	}
}

func TestDeterminism(t *testing.T) {
	wm, err := New(defaultTestParameters())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img1 := midGrayImage(512, 512)
	img2 := midGrayImage(512, 512)
	if err := wm.EmbedText(img1, "determinism check"); err != nil {
		t.Fatalf("EmbedText img1: %v", err)
	}
	if err := wm.EmbedText(img2, "determinism check"); err != nil {
		t.Fatalf("EmbedText img2: %v", err)
	}
	w, h := img1.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r1, g1, b1 := img1.At(x, y)
			r2, g2, b2 := img2.At(x, y)
			if r1 != r2 || g1 != g2 || b1 != b2 {
				t.Fatalf("pixel (%d,%d) differs between identical embeds: (%d,%d,%d) vs (%d,%d,%d)",
					x, y, r1, g1, b1, r2, g2, b2)
			}
		}
	}
}

func TestCapacityMath(t *testing.T) {
	tests := []struct {
		b, k                                  int
		wantTotal, wantData, wantTextLen      int
	}{
		{10, 6, 144, 96, 16},
		{8, 0, 256, 256, 42},
		{16, 2, 64, 48, 8},
	}
	for _, tt := range tests {
		p := Parameters{BitBoxSize: tt.b, ParityBytes: tt.k, Opacity: 1.0, SeedEmbedding: 1, SeedWatermark: 2}
		cap, err := p.derive()
		if err != nil {
			t.Fatalf("derive(b=%d,k=%d): %v", tt.b, tt.k, err)
		}
		if cap.MaxBitsTotal != tt.wantTotal || cap.MaxBitsData != tt.wantData || cap.MaxTextLen != tt.wantTextLen {
			t.Errorf("derive(b=%d,k=%d) = %+v, want {%d %d %d}", tt.b, tt.k, cap, tt.wantTotal, tt.wantData, tt.wantTextLen)
		}
	}
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	_, err := New(Parameters{BitBoxSize: 10, ParityBytes: 20, Opacity: 1.0})
	if err == nil {
		t.Fatal("expected ErrInvalidParameters for oversized parity")
	}
}
