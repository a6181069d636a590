// Package display reports monitor geometry for window placement.
package display

import (
	"image"

	"github.com/kbinani/screenshot"
)

// Fallback is used when no display can be queried (headless CI, Wayland
// without XWayland).
var Fallback = image.Rect(0, 0, 1920, 1080)

// boundsFunc and countFunc are swapped in tests.
var (
	countFunc  = screenshot.NumActiveDisplays
	boundsFunc = screenshot.GetDisplayBounds
)

// Primary returns the bounds of display 0.
func Primary() image.Rectangle {
	if countFunc() == 0 {
		return Fallback
	}
	b := boundsFunc(0)
	if b.Empty() {
		return Fallback
	}
	return b
}

// Virtual returns the union of all active displays.
func Virtual() image.Rectangle {
	n := countFunc()
	if n == 0 {
		return Fallback
	}
	union := boundsFunc(0)
	for i := 1; i < n; i++ {
		union = union.Union(boundsFunc(i))
	}
	return union
}

// Clamp limits w x h to the bounds minus margin on each side.
func Clamp(w, h int, bounds image.Rectangle, margin int) (int, int) {
	maxW := bounds.Dx() - 2*margin
	maxH := bounds.Dy() - 2*margin
	if maxW > 0 && w > maxW {
		w = maxW
	}
	if maxH > 0 && h > maxH {
		h = maxH
	}
	return w, h
}
