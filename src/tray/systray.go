package tray

import (
	"github.com/getlantern/systray"
)

// headlessTray runs the tray without fyne, for headless mode where no
// overlay windows exist.
type headlessTray struct {
	cfg Config
}

// RunHeadless blocks running the systray loop until Quit is chosen or Stop is
// called. onReady receives the tray handle once the icon is up.
func RunHeadless(cfg Config, onReady func(Tray)) {
	t := &headlessTray{cfg: cfg}
	systray.Run(func() { t.ready(onReady) }, func() {})
}

// Stop ends a RunHeadless loop.
func Stop() { systray.Quit() }

func (t *headlessTray) ready(onReady func(Tray)) {
	if len(t.cfg.Icon) > 0 {
		systray.SetIcon(systrayIcon(t.cfg.Icon))
	}
	systray.SetTitle(Title)
	systray.SetTooltip(t.cfg.Tooltip())

	status := systray.AddMenuItem(t.cfg.StatusLine(), "Hotkeys and provider")
	status.Disable()
	systray.AddSeparator()
	mQuit := systray.AddMenuItem(quitLabel, "Quit the application")

	go func() {
		<-mQuit.ClickedCh
		if t.cfg.OnQuit != nil {
			t.cfg.OnQuit()
		}
		systray.Quit()
	}()

	if onReady != nil {
		onReady(t)
	}
}

func (t *headlessTray) SetBusy(busy bool) {
	if busy {
		systray.SetTooltip(busyTooltip)
		return
	}
	systray.SetTooltip(t.cfg.Tooltip())
}
