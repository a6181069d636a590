package ui

import "testing"

func TestHistoryBrowse(t *testing.T) {
	h := NewHistory(10)
	for _, s := range []string{"one", "two", "three"} {
		h.Push(s)
	}

	steps := []struct {
		up     bool
		want   string
		wantOK bool
	}{
		{true, "three", true},
		{true, "two", true},
		{true, "one", true},
		{true, "one", true}, // stays at oldest
		{false, "two", true},
		{false, "three", true},
		{false, "", true}, // past newest clears
		{false, "", false},
	}
	for i, s := range steps {
		var got string
		var ok bool
		if s.up {
			got, ok = h.Prev()
		} else {
			got, ok = h.Next()
		}
		if got != s.want || ok != s.wantOK {
			t.Fatalf("step %d: got (%q, %v), want (%q, %v)", i, got, ok, s.want, s.wantOK)
		}
	}
}

func TestHistorySkipsConsecutiveDuplicates(t *testing.T) {
	h := NewHistory(10)
	h.Push("a")
	h.Push("a")
	h.Push("b")
	h.Push("a")
	h.Push("")
	if h.Len() != 3 {
		t.Errorf("Len = %d, want 3", h.Len())
	}
}

func TestHistoryBounded(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c")
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	h.Prev()
	if got, _ := h.Prev(); got != "b" {
		t.Errorf("oldest = %q, want b", got)
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(0)
	if _, ok := h.Prev(); ok {
		t.Error("Prev on empty history should report false")
	}
	if _, ok := h.Next(); ok {
		t.Error("Next on empty history should report false")
	}
}
