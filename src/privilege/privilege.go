// Package privilege checks whether global keyboard hooks are likely to work.
package privilege

import "runtime"

// Warning returns the hint printed at startup when IsElevated is false.
func Warning() string { return warningFor(runtime.GOOS) }

func warningFor(goos string) string {
	switch goos {
	case "windows":
		return "WARNING: Not running as Administrator. " +
			"Global hotkeys may fail. Right-click your terminal and select 'Run as Administrator'."
	case "linux":
		return "WARNING: Not running as root. " +
			"Global hotkeys may fail. Try: sudo ctrl-ai  " +
			"Or add your user to the 'input' group: sudo usermod -aG input $USER  (then log out/in)."
	case "darwin":
		return "WARNING: Not running as root. " +
			"Global hotkeys may fail. Grant Accessibility access to your terminal in " +
			"System Settings > Privacy & Security > Accessibility, or run with: sudo ctrl-ai"
	default:
		return ""
	}
}
