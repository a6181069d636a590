// Package tray shows the notification-area icon with a status line and Quit.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	Title          = "Ctrl+AI"
	busyTooltip    = "Ctrl+AI: working..."
	quitLabel      = "Quit"
	iconResourceID = "ctrl-ai.png"
)

// Config describes the tray contents.
type Config struct {
	CommanderHotkey string
	ExplainHotkey   string
	Provider        string
	Icon            []byte
	OnQuit          func()
}

// StatusLine is the disabled first menu entry.
func (c Config) StatusLine() string {
	return fmt.Sprintf("Commander: %s | Explain: %s | %s", c.CommanderHotkey, c.ExplainHotkey, c.Provider)
}

// Tooltip is the idle tooltip.
func (c Config) Tooltip() string {
	return fmt.Sprintf("%s - %s commander, %s explain", Title, c.CommanderHotkey, c.ExplainHotkey)
}

// Tray is the handle returned by either backend.
type Tray interface {
	SetBusy(busy bool)
}

type fyneTray struct {
	app  desktop.App
	menu *fyne.Menu
	cfg  Config
}

// SetupFyne installs the tray through fyne's desktop driver. It reports false
// when the running driver has no system tray support.
func SetupFyne(a fyne.App, cfg Config) (Tray, bool) {
	d, ok := a.(desktop.App)
	if !ok {
		return nil, false
	}

	status := fyne.NewMenuItem(cfg.StatusLine(), nil)
	status.Disabled = true
	quit := fyne.NewMenuItem(quitLabel, func() {
		if cfg.OnQuit != nil {
			cfg.OnQuit()
		}
		a.Quit()
	})
	quit.IsQuit = true

	t := &fyneTray{app: d, menu: fyne.NewMenu(Title, status, fyne.NewMenuItemSeparator(), quit), cfg: cfg}
	if len(cfg.Icon) > 0 {
		d.SetSystemTrayIcon(fyne.NewStaticResource(iconResourceID, cfg.Icon))
	}
	d.SetSystemTrayMenu(t.menu)
	return t, true
}

// SetBusy shows the working state on the status line.
func (t *fyneTray) SetBusy(busy bool) {
	fyne.Do(func() {
		if busy {
			t.menu.Items[0].Label = busyTooltip
		} else {
			t.menu.Items[0].Label = t.cfg.StatusLine()
		}
		t.menu.Refresh()
	})
}
