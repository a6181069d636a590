//go:build !windows

package tray

func systrayIcon(b []byte) []byte { return b }
