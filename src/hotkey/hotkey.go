package hotkey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"
	"go.uber.org/zap"
)

// ErrNoKeys is returned when a combo string contains no key that can be mapped.
var ErrNoKeys = errors.New("hotkey: no valid keys")

// Binding ties a combo string to a callback.
type Binding struct {
	Name    string
	Combo   string
	OnPress func()
}

// Key is one element of a combo with every code that counts as it
// (left and right modifier variants).
type Key struct {
	Name  string
	Codes []uint16
}

// Combo is a parsed hotkey.
type Combo struct {
	Source  string
	Keys    []Key
	Skipped []string
}

func (c Combo) String() string {
	names := make([]string, len(c.Keys))
	for i, k := range c.Keys {
		names[i] = k.Name
	}
	return strings.Join(names, "+")
}

// Parse converts "Ctrl+Alt+E" into platform key codes. Unknown names are
// recorded in Skipped; a combo with nothing left is ErrNoKeys.
func Parse(combo string) (Combo, error) {
	c := Combo{Source: combo}
	for _, name := range splitCombo(combo) {
		codes := keyCodes(name)
		if len(codes) == 0 {
			c.Skipped = append(c.Skipped, name)
			continue
		}
		c.Keys = append(c.Keys, Key{Name: name, Codes: codes})
	}
	if len(c.Keys) == 0 {
		return c, fmt.Errorf("%w in %q", ErrNoKeys, combo)
	}
	return c, nil
}

// splitCombo lowercases and normalises modifier aliases.
func splitCombo(combo string) []string {
	var keys []string
	for _, part := range strings.Split(strings.ToLower(combo), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "control":
			part = "ctrl"
		case "option":
			part = "alt"
		case "win", "cmd", "super", "meta":
			part = "cmd"
		}
		keys = append(keys, part)
	}
	return keys
}

// matcher tracks pressed state for a set of combos.
type matcher struct {
	mu      sync.Mutex
	combos  []Combo
	pressed [][]bool
}

func newMatcher(combos []Combo) *matcher {
	m := &matcher{combos: combos, pressed: make([][]bool, len(combos))}
	for i, c := range combos {
		m.pressed[i] = make([]bool, len(c.Keys))
	}
	return m
}

// press marks code as down and returns the indexes of combos that just completed.
// A completed combo has its state reset so it fires once per chord.
func (m *matcher) press(code uint16) []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var fired []int
	for i, c := range m.combos {
		for j, k := range c.Keys {
			if containsCode(k.Codes, code) {
				m.pressed[i][j] = true
			}
		}
		if allTrue(m.pressed[i]) {
			fired = append(fired, i)
			for j := range m.pressed[i] {
				m.pressed[i][j] = false
			}
		}
	}
	return fired
}

func (m *matcher) release(code uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.combos {
		for j, k := range c.Keys {
			if containsCode(k.Codes, code) {
				m.pressed[i][j] = false
			}
		}
	}
}

func containsCode(codes []uint16, code uint16) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return len(bs) > 0
}

// parseBindings returns the bindings whose combo parsed, index-aligned with
// their combos. An unusable combo is logged and dropped.
func parseBindings(bindings []Binding, logger *zap.SugaredLogger) ([]Binding, []Combo, error) {
	kept := make([]Binding, 0, len(bindings))
	combos := make([]Combo, 0, len(bindings))
	for _, b := range bindings {
		c, err := Parse(b.Combo)
		for _, s := range c.Skipped {
			logger.Warnf("Cannot map key '%s' in %s hotkey %q, ignoring it", s, b.Name, b.Combo)
		}
		if err != nil {
			logger.Errorf("%s hotkey disabled: %v", b.Name, err)
			continue
		}
		logger.Infof("Hotkey listener configured for %s: %s", b.Name, c)
		kept = append(kept, b)
		combos = append(combos, c)
	}
	if len(combos) == 0 {
		return nil, nil, ErrNoKeys
	}
	return kept, combos, nil
}

// Listen parses every binding and starts one gohook listener dispatching to
// them. It returns immediately; the hook is torn down when ctx is cancelled.
func Listen(ctx context.Context, bindings []Binding, logger *zap.SugaredLogger) error {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	kept, combos, err := parseBindings(bindings, logger)
	if err != nil {
		return err
	}

	m := newMatcher(combos)
	evChan := gohook.Start()
	if evChan == nil {
		return errors.New("hotkey: gohook.Start returned nil channel")
	}

	go func() {
		<-ctx.Done()
		gohook.End()
	}()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("PANIC in hotkey goroutine: %v", r)
			}
		}()
		for ev := range evChan {
			switch {
			case ev.Kind == pressKind:
				for _, i := range m.press(eventCode(ev)) {
					logger.Debugf("Hotkey %s detected (%s)", kept[i].Name, kept[i].Combo)
					if kept[i].OnPress != nil {
						kept[i].OnPress()
					}
				}
			case ev.Kind == gohook.KeyUp:
				m.release(eventCode(ev))
			}
		}
		logger.Debug("hotkey event channel closed")
	}()
	return nil
}
