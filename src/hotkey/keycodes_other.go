//go:build !windows

package hotkey

import (
	gohook "github.com/robotn/gohook"
)

// libuiohook reports a physical press as KeyHold and the typed character as
// KeyDown; only the former is counted.
const pressKind = gohook.KeyHold

func eventCode(ev gohook.Event) uint16 { return ev.Keycode }

// variants lists the gohook table names that count as one logical key.
var variants = map[string][]string{
	"ctrl":   {"ctrl", "rctrl"},
	"alt":    {"alt", "ralt"},
	"shift":  {"shift", "rshift"},
	"cmd":    {"cmd", "rcmd"},
	"return": {"enter"},
	"escape": {"esc"},
	"del":    {"delete"},
	"ins":    {"insert"},
	"pgup":   {"pageup"},
	"pgdn":   {"pagedown"},
}

func keyCodes(name string) []uint16 {
	names, ok := variants[name]
	if !ok {
		names = []string{name}
	}
	var codes []uint16
	for _, n := range names {
		if code, ok := gohook.Keycode[n]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}
