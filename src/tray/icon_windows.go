//go:build windows

package tray

import "go.uber.org/zap"

// systrayIcon converts PNG bytes to ICO; the Windows tray rejects PNG.
func systrayIcon(b []byte) []byte {
	ico, err := pngToICO(b)
	if err != nil {
		zap.S().Warnf("tray: icon not converted to ICO: %v", err)
		return b
	}
	return ico
}
