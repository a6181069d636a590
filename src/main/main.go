package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"ctrl-ai/src/ai"
	"ctrl-ai/src/config"
	"ctrl-ai/src/singleinstance"
)

// errAlreadyRunning is returned when another resident owns the IPC port.
var errAlreadyRunning = errors.New("ctrl-ai is already running")

type mainOptions struct {
	envFile  string
	provider string
	headless bool
}

func main() {
	// Ensure DPI awareness before creating any windows or querying metrics
	enableDPIAwareness()

	// fyne and systray both want the main thread
	runtime.LockOSThread()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runWithArgs(ctx, normalizeLegacyArgs(os.Args)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func runWithArgs(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"ctrl-ai"}
	}
	opts := &mainOptions{}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args[1:])
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(opts *mainOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ctrl-ai",
		Short:         "Rewrite or explain selected text with a global hotkey",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResident(cmd.Context(), loadOptions(cmd, opts))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Path to a .env file (highest precedence)")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "AI provider: auto, gemini, groq or mock")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "Run without overlay windows; results are pasted or copied directly")

	cmd.AddCommand(newTriggerCmd(opts))
	return cmd
}

func newTriggerCmd(opts *mainOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "trigger commander|explain",
		Short:     "Ask the running instance to act as if a hotkey was pressed",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(ai.ModeCommander), string(ai.ModeExplain)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithOptions(config.LoadOptions{EnvFileOverride: opts.envFile})
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			client := singleinstance.NewClient(singleinstance.PortRange{Start: cfg.PortStart, End: cfg.PortEnd})
			return trigger(cmd.Context(), client, ai.ParseMode(args[0]))
		},
	}
}

func trigger(ctx context.Context, client singleinstance.Client, mode ai.Mode) error {
	if err := client.Trigger(ctx, mode); err != nil {
		if errors.Is(err, singleinstance.ErrNoResident) {
			return fmt.Errorf("%w: start ctrl-ai first", err)
		}
		return fmt.Errorf("trigger %s: %w", mode, err)
	}
	return nil
}

// loadOptions only overrides what was set on the command line.
func loadOptions(cmd *cobra.Command, opts *mainOptions) config.LoadOptions {
	lo := config.LoadOptions{
		EnvFileOverride:  opts.envFile,
		ProviderOverride: opts.provider,
	}
	if cmd.Flags().Changed("headless") {
		h := opts.headless
		lo.Headless = &h
	}
	return lo
}

// normalizeLegacyArgs maps Go-style -flag to GNU-style --flag.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	normalized := make([]string, len(args))
	copy(normalized, args)

	for i := 1; i < len(normalized); i++ {
		arg := normalized[i]
		for _, name := range []string{"env-file", "provider", "headless"} {
			switch {
			case arg == "-"+name:
				normalized[i] = "--" + name
			case strings.HasPrefix(arg, "-"+name+"="):
				normalized[i] = "-" + arg
			}
		}
	}

	return normalized
}
