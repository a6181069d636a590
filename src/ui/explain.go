package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	explainWidth  = 620
	explainHeight = 400
)

type explainWindow struct {
	win  fyne.Window
	body *widget.RichText
}

func newExplainWindow(win fyne.Window) *explainWindow {
	e := &explainWindow{win: win, body: widget.NewRichText()}
	e.body.Wrapping = fyne.TextWrapWord

	closeBtn := widget.NewButtonWithIcon("Close (Esc)", theme.CancelIcon(), e.hide)
	win.SetContent(container.NewBorder(
		widget.NewLabelWithStyle("Explanation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(layoutSpacer(), closeBtn),
		nil, nil,
		container.NewVScroll(e.body),
	))
	win.SetCloseIntercept(e.hide)
	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			e.hide()
		}
	})
	return e
}

func (e *explainWindow) show(text string) {
	e.body.Segments = []widget.RichTextSegment{&widget.TextSegment{Style: widget.RichTextStyleParagraph, Text: text}}
	e.body.Refresh()
	e.win.Show()
	e.win.RequestFocus()
}

func (e *explainWindow) hide() { e.win.Hide() }

func layoutSpacer() fyne.CanvasObject { return layout.NewSpacer() }
