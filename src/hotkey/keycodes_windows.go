//go:build windows

package hotkey

import (
	"strconv"

	gohook "github.com/robotn/gohook"
)

// On Windows gohook reports virtual-key codes in Rawcode.
const pressKind = gohook.KeyDown

func eventCode(ev gohook.Event) uint16 { return ev.Rawcode }

var vkCodes = map[string][]uint16{
	"ctrl":  {162, 163}, // VK_LCONTROL, VK_RCONTROL
	"alt":   {164, 165}, // VK_LMENU, VK_RMENU
	"shift": {160, 161}, // VK_LSHIFT, VK_RSHIFT
	"cmd":   {91, 92},   // VK_LWIN, VK_RWIN

	"space":     {32},
	"enter":     {13},
	"return":    {13},
	"esc":       {27},
	"escape":    {27},
	"tab":       {9},
	"backspace": {8},
	"delete":    {46},
	"del":       {46},
	"insert":    {45},
	"ins":       {45},
	"home":      {36},
	"end":       {35},
	"pageup":    {33},
	"pgup":      {33},
	"pagedown":  {34},
	"pgdn":      {34},
	"left":      {37},
	"up":        {38},
	"right":     {39},
	"down":      {40},
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		vkCodes[string(c)] = []uint16{uint16(c - 'a' + 'A')}
	}
	for c := '0'; c <= '9'; c++ {
		vkCodes[string(c)] = []uint16{uint16(c)}
	}
	// VK_F1 is 0x70.
	for n := 1; n <= 24; n++ {
		vkCodes["f"+strconv.Itoa(n)] = []uint16{uint16(111 + n)}
	}
}

func keyCodes(name string) []uint16 {
	return vkCodes[name]
}
