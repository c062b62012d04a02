package watermark

import "testing"

func makeBlock(n int, f func(x, y int) int) [][]int {
	b := make([][]int, n)
	for y := 0; y < n; y++ {
		b[y] = make([]int, n)
		for x := 0; x < n; x++ {
			b[y][x] = f(x, y)
		}
	}
	return b
}

func TestDCTRoundTrip8(t *testing.T) {
	block := makeBlock(8, func(x, y int) int { return (x*17 + y*29) % 256 })

	coef, err := ForwardDCT2D(block)
	if err != nil {
		t.Fatalf("ForwardDCT2D: %v", err)
	}
	back, err := InverseDCT2D(coef)
	if err != nil {
		t.Fatalf("InverseDCT2D: %v", err)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			diff := back[y][x] - block[y][x]
			if diff < -1 || diff > 1 {
				t.Errorf("(%d,%d): got %d, want ~%d (diff %d)", x, y, back[y][x], block[y][x], diff)
			}
		}
	}
}

func TestDCTRoundTrip4(t *testing.T) {
	block := makeBlock(4, func(x, y int) int { return (x*53 + y*7 + 10) % 256 })

	coef, err := ForwardDCT2D(block)
	if err != nil {
		t.Fatalf("ForwardDCT2D: %v", err)
	}
	back, err := InverseDCT2D(coef)
	if err != nil {
		t.Fatalf("InverseDCT2D: %v", err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			diff := back[y][x] - block[y][x]
			if diff < -1 || diff > 1 {
				t.Errorf("(%d,%d): got %d, want ~%d (diff %d)", x, y, back[y][x], block[y][x], diff)
			}
		}
	}
}

func TestDCTRejectsBadBlockSize(t *testing.T) {
	block := makeBlock(5, func(x, y int) int { return 0 })
	if _, err := ForwardDCT2D(block); err == nil {
		t.Fatal("expected error for unsupported block size")
	}
}

func TestClampByte(t *testing.T) {
	if ClampByte(-5) != 0 {
		t.Error("ClampByte(-5) != 0")
	}
	if ClampByte(300) != 255 {
		t.Error("ClampByte(300) != 255")
	}
	if ClampByte(128) != 128 {
		t.Error("ClampByte(128) != 128")
	}
}
