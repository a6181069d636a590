package ai

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ctrl-ai/src/config"
	"ctrl-ai/src/logutil"
)

// Handler routes requests to the selected provider and never fails:
// provider errors are logged and answered with mock text.
type Handler struct {
	provider Provider
	mock     MockProvider
	timeout  time.Duration
	logger   *zap.SugaredLogger
}

type Options struct {
	// Preference is one of config.Provider*; auto picks by available keys.
	Preference    string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GroqAPIKey    string
	GroqModel     string
	GroqBaseURL   string
	MockDelay     time.Duration
	// Timeout bounds a single provider call; zero means no extra deadline.
	Timeout time.Duration
}

// OptionsFromConfig maps application configuration onto handler options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Preference:   cfg.Provider,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
		GroqAPIKey:   cfg.GroqAPIKey,
		GroqModel:    cfg.GroqModel,
		GroqBaseURL:  cfg.GroqBaseURL,
		MockDelay:    cfg.MockDelay,
		Timeout:      cfg.RequestTimeout(),
	}
}

// NewHandler selects a provider. Priority: an explicit preference whose key
// is present, then Gemini, then Groq, then mock. A client that fails to
// initialise leaves the handler on mock.
func NewHandler(ctx context.Context, opts Options, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	h := &Handler{
		mock:    MockProvider{Delay: opts.MockDelay},
		timeout: opts.Timeout,
		logger:  logger,
	}

	switch choice := choose(opts); choice {
	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, GeminiOptions{APIKey: opts.GeminiAPIKey, Model: opts.GeminiModel, BaseURL: opts.GeminiBaseURL})
		if err != nil {
			logger.Errorf("AIHandler: Error initializing Gemini: %v.", err)
			break
		}
		h.provider = p
		logger.Infow("AIHandler: Switched to Gemini provider.", "key", logutil.RedactKey(opts.GeminiAPIKey))
	case config.ProviderGroq:
		p, err := NewGroqProvider(GroqOptions{APIKey: opts.GroqAPIKey, Model: opts.GroqModel, BaseURL: opts.GroqBaseURL})
		if err != nil {
			logger.Errorf("AIHandler: Error initializing Groq: %v.", err)
			break
		}
		h.provider = p
		logger.Infow("AIHandler: Switched to GROQ provider.", "key", logutil.RedactKey(opts.GroqAPIKey))
	}

	if h.provider == nil {
		h.provider = h.mock
		logger.Info("AIHandler: Using mock provider.")
	}
	return h
}

// NewHandlerWithProvider wires an already built provider.
func NewHandlerWithProvider(p Provider, mock MockProvider, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if p == nil {
		p = mock
	}
	return &Handler{provider: p, mock: mock, logger: logger}
}

func choose(opts Options) string {
	switch config.NormalizeProvider(opts.Preference) {
	case config.ProviderMock:
		return config.ProviderMock
	case config.ProviderGemini:
		if opts.GeminiAPIKey != "" {
			return config.ProviderGemini
		}
	case config.ProviderGroq:
		if opts.GroqAPIKey != "" {
			return config.ProviderGroq
		}
	}

	// Groq is only consulted when no Gemini key is configured.
	if opts.GeminiAPIKey != "" {
		return config.ProviderGemini
	}
	if opts.GroqAPIKey != "" {
		return config.ProviderGroq
	}
	return config.ProviderMock
}

// Provider returns the active provider name.
func (h *Handler) Provider() string { return h.provider.Name() }

// Process runs req against the active provider.
func (h *Handler) Process(ctx context.Context, req Request) string {
	if h.provider.Name() == h.mock.Name() {
		out, _ := h.mock.Complete(ctx, req)
		return out
	}

	callCtx := ctx
	if h.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := h.provider.Complete(callCtx, req)
	if err != nil {
		perr := &ProviderError{Provider: h.provider.Name(), Err: err}
		h.logger.Warnf("%v. Falling back to mock.", perr)
		fallback, _ := h.mock.Complete(context.WithoutCancel(ctx), req)
		return fallback
	}
	h.logger.Debugw("provider call finished",
		"provider", h.provider.Name(),
		"mode", req.Mode,
		"elapsed", time.Since(start),
		"chars", len(out))
	return out
}
