package display

import (
	"image"
	"testing"
)

func withDisplays(t *testing.T, rects ...image.Rectangle) {
	t.Helper()
	oldCount, oldBounds := countFunc, boundsFunc
	countFunc = func() int { return len(rects) }
	boundsFunc = func(i int) image.Rectangle { return rects[i] }
	t.Cleanup(func() { countFunc, boundsFunc = oldCount, oldBounds })
}

func TestPrimaryAndVirtual(t *testing.T) {
	withDisplays(t, image.Rect(0, 0, 2560, 1440), image.Rect(2560, 0, 4480, 1080))

	if got := Primary(); got != image.Rect(0, 0, 2560, 1440) {
		t.Errorf("Primary = %v", got)
	}
	if got := Virtual(); got != image.Rect(0, 0, 4480, 1440) {
		t.Errorf("Virtual = %v", got)
	}
}

func TestNoDisplaysFallsBack(t *testing.T) {
	withDisplays(t)
	if Primary() != Fallback || Virtual() != Fallback {
		t.Error("expected fallback bounds with no displays")
	}
}

func TestClamp(t *testing.T) {
	small := image.Rect(0, 0, 800, 600)
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{820, 420, 760, 420},
		{600, 60, 600, 60},
		{1000, 1000, 760, 560},
	}
	for _, tt := range tests {
		w, h := Clamp(tt.w, tt.h, small, 20)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("Clamp(%d,%d) = %d,%d want %d,%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}
