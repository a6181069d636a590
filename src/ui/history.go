package ui

// History is the input bar's recall list. The cursor sits one past the
// newest entry when nothing is being browsed.
type History struct {
	items  []string
	max    int
	cursor int
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = 50
	}
	return &History{max: max}
}

// Push records s unless it is empty or equal to the newest entry, and resets
// the cursor.
func (h *History) Push(s string) {
	if s != "" && (len(h.items) == 0 || h.items[len(h.items)-1] != s) {
		h.items = append(h.items, s)
		if over := len(h.items) - h.max; over > 0 {
			h.items = append(h.items[:0:0], h.items[over:]...)
		}
	}
	h.Reset()
}

// Reset moves the cursor back past the newest entry.
func (h *History) Reset() { h.cursor = len(h.items) }

// Prev steps towards older entries. It reports false when history is empty.
func (h *History) Prev() (string, bool) {
	if len(h.items) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.items[h.cursor], true
}

// Next steps towards newer entries; stepping past the newest yields "".
// It reports false when not browsing.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.items) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.items) {
		return "", true
	}
	return h.items[h.cursor], true
}

func (h *History) Len() int { return len(h.items) }
