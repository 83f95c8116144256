package renderer

import (
	"image/color"
	"sync"
	"testing"
)

func TestUVDebugImageRows(t *testing.T) {
	img := UVDebugImage()

	if img.Rect.Dx() != 8 || img.Rect.Dy() != 8 {
		t.Fatalf("Expected 8x8 image, got %v", img.Rect)
	}

	for x := 0; x < 8; x++ {
		if got := img.RGBAAt(x, 0); got != uvDebugPalette[x] {
			t.Errorf("Row 0 pixel %d: expected %v, got %v", x, uvDebugPalette[x], got)
		}
	}

	// Each row is the previous one rotated right by one pixel
	for y := 1; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := img.RGBAAt((x+7)%8, y-1)
			if got := img.RGBAAt(x, y); got != want {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestSolidImage(t *testing.T) {
	c := color.RGBA{192, 192, 192, 255}
	img := SolidImage(3, 2, c)

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := img.RGBAAt(x, y); got != c {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, c, got)
			}
		}
	}
}

func TestNoiseImageDeterministic(t *testing.T) {
	a := NoiseImage(16, 16, 42)
	b := NoiseImage(16, 16, 42)

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("Same seed should produce the same image, differs at byte %d", i)
		}
	}

	for i := 3; i < len(a.Pix); i += 4 {
		if a.Pix[i] != 255 {
			t.Fatalf("Noise image should be opaque, alpha %d at byte %d", a.Pix[i], i)
		}
	}
}

func TestFillRowsVisitsEveryRow(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[int]bool)
	err := fillRows(32, func(y int) {
		mu.Lock()
		seen[y] = true
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(seen) != 32 {
		t.Errorf("Expected 32 rows, got %d", len(seen))
	}
}

func TestFillRowsReportsPanic(t *testing.T) {
	err := fillRows(8, func(y int) {
		if y == 5 {
			panic("bad row")
		}
	})
	if err == nil {
		t.Error("Expected a panicking row to surface as an error")
	}
}

func TestLavaRampBounds(t *testing.T) {
	dark := lavaRamp(-10)
	bright := lavaRamp(10)

	if dark != (color.RGBA{80, 0, 0, 255}) {
		t.Errorf("Expected darkest crust color, got %v", dark)
	}
	if bright != (color.RGBA{255, 200, 40, 255}) {
		t.Errorf("Expected brightest color, got %v", bright)
	}
}
