package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	reviewWidth  = 820
	reviewHeight = 420
)

// proposalEntry is the editable side of the review window. Enter and
// Ctrl+Enter accept, Shift+Enter inserts a newline, Escape rejects.
type proposalEntry struct {
	widget.Entry
	onAccept func()
	onEscape func()
	shift    bool
}

func newProposalEntry() *proposalEntry {
	e := &proposalEntry{}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	return e
}

func (e *proposalEntry) TypedShortcut(s fyne.Shortcut) {
	if cs, ok := s.(*desktop.CustomShortcut); ok &&
		cs.KeyName == fyne.KeyReturn && cs.Modifier == fyne.KeyModifierControl {
		if e.onAccept != nil {
			e.onAccept()
		}
		return
	}
	e.Entry.TypedShortcut(s)
}

func (e *proposalEntry) KeyDown(ev *fyne.KeyEvent) {
	if ev.Name == desktop.KeyShiftLeft || ev.Name == desktop.KeyShiftRight {
		e.shift = true
	}
	e.Entry.KeyDown(ev)
}

func (e *proposalEntry) KeyUp(ev *fyne.KeyEvent) {
	if ev.Name == desktop.KeyShiftLeft || ev.Name == desktop.KeyShiftRight {
		e.shift = false
	}
	e.Entry.KeyUp(ev)
}

func (e *proposalEntry) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		if e.onEscape != nil {
			e.onEscape()
			return
		}
	case fyne.KeyReturn, fyne.KeyEnter:
		if !e.shift && e.onAccept != nil {
			e.onAccept()
			return
		}
	}
	e.Entry.TypedKey(ev)
}

type reviewWindow struct {
	win         fyne.Window
	original    *widget.Entry
	proposal    *proposalEntry
	summary     *widget.RichText
	acceptDelay time.Duration

	onAccept func(text string)
	onReject func()
}

func newReviewWindow(win fyne.Window, acceptDelay time.Duration, onAccept func(string), onReject func()) *reviewWindow {
	r := &reviewWindow{
		win:         win,
		original:    widget.NewMultiLineEntry(),
		proposal:    newProposalEntry(),
		summary:     widget.NewRichText(),
		acceptDelay: acceptDelay,
		onAccept:    onAccept,
		onReject:    onReject,
	}
	r.original.Wrapping = fyne.TextWrapWord
	r.original.Disable()
	r.summary.Wrapping = fyne.TextWrapWord
	r.proposal.onAccept = r.accept
	r.proposal.onEscape = r.reject

	reject := widget.NewButtonWithIcon("Reject (Esc)", theme.CancelIcon(), r.reject)
	accept := widget.NewButtonWithIcon("Accept (Enter)", theme.ConfirmIcon(), r.accept)
	accept.Importance = widget.HighImportance

	panes := container.NewGridWithColumns(2,
		container.NewBorder(widget.NewLabelWithStyle("Original Text", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), nil, nil, nil, r.original),
		container.NewBorder(widget.NewLabelWithStyle("AI Proposal (editable)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), nil, nil, nil, r.proposal),
	)
	changes := container.NewVScroll(r.summary)
	changes.SetMinSize(fyne.NewSize(0, 60))
	buttons := container.NewHBox(layoutSpacer(), reject, accept)

	win.SetContent(container.NewBorder(nil, container.NewVBox(changes, buttons), nil, nil, panes))
	win.SetCloseIntercept(r.reject)
	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			r.reject()
		case fyne.KeyReturn, fyne.KeyEnter:
			r.accept()
		}
	})
	return r
}

func (r *reviewWindow) show(original, proposal string) {
	r.original.SetText(original)
	r.proposal.SetText(proposal)
	r.setSummary(diffSpans(original, proposal))
	r.win.Show()
	r.win.RequestFocus()
	r.win.Canvas().Focus(r.proposal)
}

func (r *reviewWindow) setSummary(spans []span) {
	ins, del := changeCounts(spans)
	segs := []widget.RichTextSegment{
		&widget.TextSegment{
			Style: widget.RichTextStyle{ColorName: theme.ColorNamePlaceHolder, TextStyle: fyne.TextStyle{Italic: true}},
			Text:  fmt.Sprintf("Changes: +%d / -%d characters  ", ins, del),
		},
	}
	for _, s := range spans {
		style := widget.RichTextStyleInline
		switch s.Kind {
		case spanInsert:
			style.ColorName = theme.ColorNameSuccess
			style.TextStyle = fyne.TextStyle{Bold: true}
		case spanDelete:
			style.ColorName = theme.ColorNameError
			style.TextStyle = fyne.TextStyle{Italic: true}
		}
		segs = append(segs, &widget.TextSegment{Style: style, Text: s.Text})
	}
	r.summary.Segments = segs
	r.summary.Refresh()
}

// accept hides the window first so focus returns to the target application
// before the paste chord is sent.
func (r *reviewWindow) accept() {
	text := r.proposal.Text
	r.win.Hide()
	if r.onAccept == nil {
		return
	}
	if r.acceptDelay <= 0 {
		r.onAccept(text)
		return
	}
	time.AfterFunc(r.acceptDelay, func() { r.onAccept(text) })
}

func (r *reviewWindow) reject() {
	r.win.Hide()
	if r.onReject != nil {
		r.onReject()
	}
}
