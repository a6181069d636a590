package hotkey

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestSplitCombo(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Ctrl+Alt+E", []string{"ctrl", "alt", "e"}},
		{"ctrl + space", []string{"ctrl", "space"}},
		{"Win+Shift+S", []string{"cmd", "shift", "s"}},
		{"Super+Q", []string{"cmd", "q"}},
		{"Control+Option+X", []string{"ctrl", "alt", "x"}},
		{"F13", []string{"f13"}},
		{"Ctrl++E", []string{"ctrl", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := splitCombo(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitCombo(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("Ctrl+Alt+E")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(c.Keys) != 3 || c.String() != "ctrl+alt+e" {
		t.Errorf("unexpected combo %v", c)
	}

	c, err = Parse("Ctrl+Bogus+E")
	if err != nil {
		t.Fatalf("Parse with unknown key: %v", err)
	}
	if !reflect.DeepEqual(c.Skipped, []string{"bogus"}) {
		t.Errorf("Skipped = %v", c.Skipped)
	}
	if len(c.Keys) != 2 {
		t.Errorf("expected 2 keys, got %d", len(c.Keys))
	}

	if _, err := Parse("Foo+Bar"); !errors.Is(err, ErrNoKeys) {
		t.Errorf("expected ErrNoKeys, got %v", err)
	}
	if _, err := Parse(""); !errors.Is(err, ErrNoKeys) {
		t.Errorf("expected ErrNoKeys for empty combo, got %v", err)
	}
}

func testCombo(codes ...[]uint16) Combo {
	var c Combo
	for _, cs := range codes {
		c.Keys = append(c.Keys, Key{Codes: cs})
	}
	return c
}

func TestMatcherFiresOnceWhenAllDown(t *testing.T) {
	m := newMatcher([]Combo{testCombo([]uint16{1, 2}, []uint16{10})})

	if got := m.press(1); len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	if got := m.press(10); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("expected combo 0 to fire, got %v", got)
	}
	// State is reset after firing; a repeat of the last key alone does nothing.
	if got := m.press(10); len(got) != 0 {
		t.Errorf("fired again without modifier: %v", got)
	}
}

func TestMatcherRightModifierVariant(t *testing.T) {
	m := newMatcher([]Combo{testCombo([]uint16{1, 2}, []uint16{10})})
	m.press(2)
	if got := m.press(10); len(got) != 1 {
		t.Errorf("right variant should satisfy modifier, got %v", got)
	}
}

func TestMatcherReleaseClearsKey(t *testing.T) {
	m := newMatcher([]Combo{testCombo([]uint16{1}, []uint16{10})})
	m.press(1)
	m.release(1)
	if got := m.press(10); len(got) != 0 {
		t.Errorf("released modifier still counted: %v", got)
	}
}

func TestMatcherIndependentCombos(t *testing.T) {
	commander := testCombo([]uint16{1}, []uint16{10})
	explain := testCombo([]uint16{1}, []uint16{3}, []uint16{20})
	m := newMatcher([]Combo{commander, explain})

	m.press(1)
	m.press(3)
	if got := m.press(20); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("expected explain only, got %v", got)
	}
}

func TestParseBindingsDropsOnlyInvalidCombo(t *testing.T) {
	bindings := []Binding{
		{Name: "commander", Combo: "Foo+Bar"},
		{Name: "explain", Combo: "Ctrl+Alt+E"},
	}
	kept, combos, err := parseBindings(bindings, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("parseBindings: %v", err)
	}
	if len(kept) != 1 || kept[0].Name != "explain" {
		t.Fatalf("kept = %+v, want only explain", kept)
	}
	if len(combos) != 1 || combos[0].String() != "ctrl+alt+e" {
		t.Errorf("combos = %v", combos)
	}

	_, _, err = parseBindings(bindings[:1], zap.NewNop().Sugar())
	if !errors.Is(err, ErrNoKeys) {
		t.Errorf("err = %v, want ErrNoKeys", err)
	}
}
