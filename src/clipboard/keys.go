package clipboard

import (
	"runtime"

	"github.com/go-vgo/robotgo"
)

// robotKeys taps the copy and paste chords with robotgo.
type robotKeys struct{}

func chordModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}

func (robotKeys) Copy() error  { return robotgo.KeyTap("c", chordModifier()) }
func (robotKeys) Paste() error { return robotgo.KeyTap("v", chordModifier()) }
