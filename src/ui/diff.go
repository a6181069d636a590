package ui

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type spanKind int

const (
	spanEqual spanKind = iota
	spanInsert
	spanDelete
)

// span is a run of text from a character diff of original against proposal.
type span struct {
	Kind spanKind
	Text string
}

func diffSpans(original, proposal string) []span {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, proposal, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	spans := make([]span, 0, len(diffs))
	for _, d := range diffs {
		var k spanKind
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			k = spanInsert
		case diffmatchpatch.DiffDelete:
			k = spanDelete
		default:
			k = spanEqual
		}
		spans = append(spans, span{Kind: k, Text: d.Text})
	}
	return spans
}

// changeCounts returns inserted and deleted character counts.
func changeCounts(spans []span) (inserted, deleted int) {
	for _, s := range spans {
		switch s.Kind {
		case spanInsert:
			inserted += utf8.RuneCountInString(s.Text)
		case spanDelete:
			deleted += utf8.RuneCountInString(s.Text)
		}
	}
	return inserted, deleted
}
