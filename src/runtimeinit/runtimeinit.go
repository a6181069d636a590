package runtimeinit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ctrl-ai/src/ai"
	"ctrl-ai/src/clipboard"
	"ctrl-ai/src/config"
	"ctrl-ai/src/logutil"
	"ctrl-ai/src/notification"
)

type Options struct {
	LoadOptions config.LoadOptions
	// Console mirrors logs to stderr.
	Console bool
	// ForceFileLogging overrides ENABLE_FILE_LOGGING when non-nil.
	ForceFileLogging *bool
	InitClipboard    bool
	// ShowBlockingErrors pops a modal dialog for fatal startup errors.
	ShowBlockingErrors bool
}

// Runtime is everything a command needs after startup.
type Runtime struct {
	Config  *config.Config
	Logger  *zap.SugaredLogger
	Handler *ai.Handler
}

// Bootstrap loads configuration, sets up logging, selects the AI provider and
// optionally initialises the clipboard.
func Bootstrap(ctx context.Context, opts Options) (*Runtime, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, fail(opts, "Configuration error", fmt.Errorf("failed to load configuration: %w", err))
	}

	fileLogging := cfg.EnableFileLogging
	if opts.ForceFileLogging != nil {
		fileLogging = *opts.ForceFileLogging
	}
	logger, err := logutil.Setup(logutil.Options{
		EnableFileLogging: fileLogging,
		FilePath:          cfg.LogFile,
		Level:             cfg.LogLevel,
		Console:           opts.Console,
	})
	if err != nil {
		return nil, fail(opts, "Logging error", fmt.Errorf("failed to set up logging: %w", err))
	}
	if cfg.EnvPath != "" {
		logger.Infof("Loaded environment from %s", cfg.EnvPath)
	}

	handler := ai.NewHandler(ctx, ai.OptionsFromConfig(cfg), logger)

	if opts.InitClipboard {
		if err := clipboard.Init(); err != nil {
			return nil, fail(opts, "Clipboard unavailable", fmt.Errorf("failed to initialize clipboard: %w", err))
		}
	}

	return &Runtime{Config: cfg, Logger: logger, Handler: handler}, nil
}

func fail(opts Options, title string, err error) error {
	if opts.ShowBlockingErrors {
		notification.ShowBlockingError(title, err.Error())
	}
	return err
}
