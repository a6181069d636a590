package ui

import (
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// toast is a small status window. Each show bumps a generation counter so a
// stale auto-hide timer cannot hide a newer toast.
type toast struct {
	win   fyne.Window
	label *widget.Label
	gen   atomic.Uint64
}

func newToast(win fyne.Window) *toast {
	t := &toast{win: win, label: widget.NewLabel("")}
	win.SetContent(container.NewPadded(t.label))
	return t
}

func (t *toast) show(msg string, autoHide time.Duration) {
	gen := t.gen.Add(1)
	t.win.Hide()
	t.label.SetText("⏳ " + msg)
	t.win.Resize(t.win.Content().MinSize())
	t.win.Show()

	if autoHide <= 0 {
		return
	}
	time.AfterFunc(autoHide, func() {
		fyne.Do(func() {
			if t.gen.Load() == gen {
				t.win.Hide()
			}
		})
	})
}

func (t *toast) hide() {
	t.gen.Add(1)
	t.win.Hide()
}
