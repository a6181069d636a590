package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ctrl-ai/src/clipboard"
	"ctrl-ai/src/config"
	"ctrl-ai/src/display"
	"ctrl-ai/src/eventloop"
	"ctrl-ai/src/hotkey"
	"ctrl-ai/src/messages"
	"ctrl-ai/src/privilege"
	"ctrl-ai/src/runtimeinit"
	"ctrl-ai/src/singleinstance"
	"ctrl-ai/src/tray"
	"ctrl-ai/src/ui"
)

const (
	appID = "com.ctrl-ai.app"
	// acceptDelay lets the review window lose focus before the paste keystroke.
	acceptDelay = 200 * time.Millisecond
)

// resident is everything both run modes share.
type resident struct {
	cfg       *config.Config
	logger    *zap.SugaredLogger
	rt        *runtimeinit.Runtime
	server    singleinstance.Server
	selection *clipboard.Selection
	trayCfg   tray.Config
}

func runResident(ctx context.Context, lo config.LoadOptions) error {
	elevated := privilege.IsElevated()
	if !elevated {
		if w := privilege.Warning(); w != "" {
			fmt.Fprintln(os.Stderr, w)
		}
	}

	rt, err := runtimeinit.Bootstrap(ctx, runtimeinit.Options{
		LoadOptions:        lo,
		Console:            true,
		InitClipboard:      true,
		ShowBlockingErrors: true,
	})
	if err != nil {
		return err
	}
	cfg, logger := rt.Config, rt.Logger
	defer func() { _ = logger.Sync() }()
	if !elevated {
		logger.Warn(privilege.Warning())
	}

	server := singleinstance.NewServer(singleinstance.PortRange{Start: cfg.PortStart, End: cfg.PortEnd})
	if err := server.Start(ctx); err != nil {
		logger.Errorf("Pre-flight: port %d busy, resident already exists: %v", cfg.PortStart, err)
		fmt.Printf("one is already running on port %d\n", cfg.PortStart)
		return errAlreadyRunning
	}
	defer func() { _ = server.Close() }()

	icon, iconErr := tray.IconPNG(cfg.IconPath)
	if iconErr != nil {
		logger.Warnf("Tray icon: %v", iconErr)
	}

	r := &resident{
		cfg:    cfg,
		logger: logger,
		rt:     rt,
		server: server,
		selection: clipboard.New(clipboard.Options{
			CopyTimeout: cfg.CopyTimeout,
			PasteDelay:  cfg.PasteDelay,
			Restore:     cfg.RestoreClipboard,
		}, logger),
		trayCfg: tray.Config{
			CommanderHotkey: cfg.CommanderHotkey,
			ExplainHotkey:   cfg.ExplainHotkey,
			Provider:        rt.Handler.Provider(),
			Icon:            icon,
		},
	}

	printBanner(os.Stdout, cfg, rt.Handler.Provider())
	logger.Infof("Ctrl+AI initialized: provider=%s commander=%s explain=%s deadline=%s",
		rt.Handler.Provider(), cfg.CommanderHotkey, cfg.ExplainHotkey, cfg.RequestTimeout())
	logger.Debugf("Displays: primary=%v virtual=%v", display.Primary(), display.Virtual())

	if cfg.Headless {
		return r.runHeadless(ctx)
	}
	return r.runGUI(ctx)
}

func (r *resident) loopOptions(overlay eventloop.UI, onBusy func(bool)) eventloop.Options {
	return eventloop.Options{
		UI:                  overlay,
		Capturer:            r.selection,
		Paster:              r.selection,
		Processor:           r.rt.Handler,
		Copy:                clipboard.Write,
		OnBusy:              onBusy,
		Server:              r.server,
		Deadline:            r.cfg.RequestTimeout(),
		HeadlessInstruction: r.cfg.HeadlessInstruction,
		Logger:              r.logger,
	}
}

// startHotkeys hooks the keyboard. A failure is logged, not fatal: the
// trigger subcommand still reaches the loop over IPC.
func (r *resident) startHotkeys(ctx context.Context, loop *eventloop.Loop) {
	err := hotkey.Listen(ctx, bindings(r.cfg, loop), r.logger)
	if err != nil {
		r.logger.Errorf("Global hotkeys unavailable: %v", err)
		fmt.Fprintf(os.Stderr, "Global hotkeys unavailable (%v). Use 'ctrl-ai trigger commander|explain' instead.\n", err)
	}
}

func bindings(cfg *config.Config, loop *eventloop.Loop) []hotkey.Binding {
	return []hotkey.Binding{
		{
			Name:    "commander",
			Combo:   cfg.CommanderHotkey,
			OnPress: func() { loop.Post(messages.CommanderTriggered{Source: "hotkey"}) },
		},
		{
			Name:    "explain",
			Combo:   cfg.ExplainHotkey,
			OnPress: func() { loop.Post(messages.ExplainTriggered{Source: "hotkey"}) },
		},
	}
}

func (r *resident) runGUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := app.NewWithID(appID)

	var (
		loop *eventloop.Loop
		tr   tray.Tray
	)
	overlay := ui.New(a, ui.Options{
		HistorySize:    r.cfg.HistorySize,
		AcceptDelay:    acceptDelay,
		OnPrompt:       func(p string) { loop.Post(messages.PromptSubmitted{Prompt: p}) },
		OnPromptCancel: func() { loop.Post(messages.PromptCancelled{}) },
		OnAccept:       func(text string) { loop.Post(messages.ReviewAccepted{Text: text}) },
		OnReject:       func() { loop.Post(messages.ReviewRejected{}) },
		Logger:         r.logger,
	})

	trayCfg := r.trayCfg
	trayCfg.OnQuit = func() { loop.Post(messages.QuitRequested{}) }
	tr, ok := tray.SetupFyne(a, trayCfg)
	if !ok {
		r.logger.Warn("System tray not supported by this driver; quit with Ctrl+C")
	}

	loop = eventloop.New(r.loopOptions(overlay, func(busy bool) {
		if tr != nil {
			tr.SetBusy(busy)
		}
	}))
	r.startHotkeys(ctx, loop)

	loopDone := make(chan error, 1)
	go func() {
		err := loop.Run(ctx)
		loopDone <- err
		fyne.Do(a.Quit)
	}()

	a.Run()
	cancel()
	if err := <-loopDone; err != nil && ctx.Err() == nil {
		return err
	}
	r.logger.Info("Ctrl+AI stopped")
	return nil
}

func (r *resident) runHeadless(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	var current atomic.Value
	loop := eventloop.New(r.loopOptions(nil, func(busy bool) {
		if t, ok := current.Load().(tray.Tray); ok {
			t.SetBusy(busy)
		}
	}))
	r.startHotkeys(gctx, loop)

	g.Go(func() error {
		defer tray.Stop()
		if err := loop.Run(gctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	})

	trayCfg := r.trayCfg
	trayCfg.OnQuit = func() { loop.Post(messages.QuitRequested{}) }
	tray.RunHeadless(trayCfg, func(t tray.Tray) { current.Store(t) })

	// the tray can also end on its own (e.g. session logout)
	loop.Post(messages.QuitRequested{})
	err := g.Wait()
	r.logger.Info("Ctrl+AI stopped")
	return err
}

func printBanner(w io.Writer, cfg *config.Config, provider string) {
	fmt.Fprintln(w, "Ctrl+AI is running.")
	fmt.Fprintf(w, "  Commander: %s  (rewrite selected text)\n", cfg.CommanderHotkey)
	fmt.Fprintf(w, "  Explain:   %s  (ask about selected text)\n", cfg.ExplainHotkey)
	fmt.Fprintf(w, "  Provider:  %s\n", provider)
	if cfg.Headless {
		fmt.Fprintln(w, "  Mode:      headless")
	}
	fmt.Fprintln(w, "Quit from the tray icon or press Ctrl+C.")
}
