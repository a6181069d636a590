// Package ui is the fyne overlay: the prompt bar, the diff review window,
// the explanation window and the toast. Overlay methods may be called from
// any goroutine; widget work is marshalled onto the fyne thread.
package ui

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"

	"ctrl-ai/src/ai"
	"ctrl-ai/src/display"
)

const screenMargin = 40

type Options struct {
	HistorySize int
	// AcceptDelay lets focus return to the target window before pasting.
	AcceptDelay time.Duration

	OnPrompt       func(prompt string)
	OnPromptCancel func()
	OnAccept       func(text string)
	OnReject       func()

	Logger *zap.SugaredLogger
}

type Overlay struct {
	app     fyne.App
	logger  *zap.SugaredLogger
	bar     *inputBar
	review  *reviewWindow
	explain *explainWindow
	toast   *toast
}

// New builds every overlay window hidden. Call it on the main goroutine
// before app.Run.
func New(a fyne.App, opts Options) *Overlay {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	a.Settings().SetTheme(newOverlayTheme())

	o := &Overlay{app: a, logger: logger}
	bounds := display.Primary()

	barWin := o.borderless("Ctrl+AI")
	o.bar = newInputBar(barWin, NewHistory(opts.HistorySize), opts.OnPrompt, opts.OnPromptCancel)
	sizeWindow(barWin, inputBarWidth, inputBarHeight, bounds)

	reviewWin := a.NewWindow("Review Changes")
	o.review = newReviewWindow(reviewWin, opts.AcceptDelay, opts.OnAccept, opts.OnReject)
	sizeWindow(reviewWin, reviewWidth, reviewHeight, bounds)

	explainWin := a.NewWindow("Explanation")
	o.explain = newExplainWindow(explainWin)
	sizeWindow(explainWin, explainWidth, explainHeight, bounds)

	o.toast = newToast(o.borderless("Ctrl+AI status"))
	return o
}

// borderless prefers a splash window where the driver offers one.
func (o *Overlay) borderless(title string) fyne.Window {
	if drv, ok := o.app.Driver().(desktop.Driver); ok {
		return drv.CreateSplashWindow()
	}
	return o.app.NewWindow(title)
}

// sizeWindow clamps the requested size to the display and centres the window.
func sizeWindow(w fyne.Window, width, height int, bounds image.Rectangle) {
	width, height = display.Clamp(width, height, bounds, screenMargin)
	w.Resize(fyne.NewSize(float32(width), float32(height)))
	w.CenterOnScreen()
}

func (o *Overlay) ShowPrompt(mode ai.Mode) {
	o.logger.Debugf("overlay: showing %s prompt", mode)
	fyne.Do(func() { o.bar.show(mode) })
}

func (o *Overlay) ShowToast(msg string, autoHide time.Duration) {
	fyne.Do(func() { o.toast.show(msg, autoHide) })
}

func (o *Overlay) HideToast() {
	fyne.Do(o.toast.hide)
}

func (o *Overlay) ShowReview(original, proposal string) {
	fyne.Do(func() { o.review.show(original, proposal) })
}

func (o *Overlay) ShowExplanation(text string) {
	fyne.Do(func() { o.explain.show(text) })
}
