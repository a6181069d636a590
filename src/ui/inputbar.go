package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"ctrl-ai/src/ai"
)

const (
	inputBarWidth  = 600
	inputBarHeight = 60
)

// promptEntry is a single-line entry that reports Up, Down and Escape.
type promptEntry struct {
	widget.Entry
	onUp     func()
	onDown   func()
	onEscape func()
}

func newPromptEntry() *promptEntry {
	e := &promptEntry{}
	e.ExtendBaseWidget(e)
	return e
}

func (e *promptEntry) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyUp:
		if e.onUp != nil {
			e.onUp()
		}
	case fyne.KeyDown:
		if e.onDown != nil {
			e.onDown()
		}
	case fyne.KeyEscape:
		if e.onEscape != nil {
			e.onEscape()
		}
	default:
		e.Entry.TypedKey(ev)
	}
}

type inputBar struct {
	win     fyne.Window
	label   *widget.Label
	entry   *promptEntry
	history *History

	onSubmit func(prompt string)
	onCancel func()
}

func newInputBar(win fyne.Window, history *History, onSubmit func(string), onCancel func()) *inputBar {
	b := &inputBar{
		win:      win,
		label:    widget.NewLabel(""),
		entry:    newPromptEntry(),
		history:  history,
		onSubmit: onSubmit,
		onCancel: onCancel,
	}
	b.entry.OnSubmitted = b.submit
	b.entry.onUp = b.older
	b.entry.onDown = b.newer
	b.entry.onEscape = b.cancel

	b.label.TextStyle = fyne.TextStyle{Bold: true}
	win.SetContent(container.NewBorder(nil, nil, b.label, nil, b.entry))
	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			b.cancel()
		}
	})
	b.setMode(ai.ModeCommander)
	return b
}

func (b *inputBar) setMode(mode ai.Mode) {
	if mode == ai.ModeExplain {
		b.label.SetText("❓ Explain")
		b.entry.SetPlaceHolder("Ask about the selected text...")
		return
	}
	b.label.SetText("✨ AI")
	b.entry.SetPlaceHolder("Tell AI what to do with the selection...")
}

func (b *inputBar) show(mode ai.Mode) {
	b.setMode(mode)
	b.entry.SetText("")
	b.history.Reset()
	b.win.Show()
	b.win.RequestFocus()
	b.win.Canvas().Focus(b.entry)
}

func (b *inputBar) submit(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.history.Push(text)
	b.win.Hide()
	if b.onSubmit != nil {
		b.onSubmit(text)
	}
}

func (b *inputBar) cancel() {
	b.win.Hide()
	if b.onCancel != nil {
		b.onCancel()
	}
}

func (b *inputBar) older() {
	if s, ok := b.history.Prev(); ok {
		b.entry.SetText(s)
		b.entry.CursorColumn = len([]rune(s))
	}
}

func (b *inputBar) newer() {
	if s, ok := b.history.Next(); ok {
		b.entry.SetText(s)
		b.entry.CursorColumn = len([]rune(s))
	}
}
