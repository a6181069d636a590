package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	EnvPathVar         = "CTRL_AI_ENV"
	GeminiKeyFileVar   = "GEMINI_API_KEY_FILE"
	GroqKeyFileVar     = "GROQ_API_KEY_FILE"
	ProviderAuto       = "auto"
	ProviderGemini     = "gemini"
	ProviderGroq       = "groq"
	ProviderMock       = "mock"
	defaultIconName    = "Ctrl+AI.png"
	defaultPortStart   = 49600
	defaultPortEnd     = 49650
	DefaultInstruction = "Fix grammar and spelling"
)

type LoadOptions struct {
	EnvFileOverride  string
	ProviderOverride string
	Headless         *bool
}

type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GroqAPIKey   string `env:"GROQ_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL"`
	GroqModel    string `env:"GROQ_MODEL"`
	GroqBaseURL  string `env:"GROQ_BASE_URL"`
	Provider     string `env:"AI_PROVIDER"`

	CommanderHotkey string `env:"COMMANDER_HOTKEY"`
	ExplainHotkey   string `env:"EXPLAIN_HOTKEY"`

	EnableFileLogging bool   `env:"ENABLE_FILE_LOGGING"`
	LogFile           string `env:"LOG_FILE"`
	LogLevel          string `env:"LOG_LEVEL"`

	RequestTimeoutSec int           `env:"REQUEST_TIMEOUT_SEC"`
	MockDelay         time.Duration `env:"MOCK_DELAY"`
	CopyTimeout       time.Duration `env:"COPY_TIMEOUT"`
	PasteDelay        time.Duration `env:"PASTE_DELAY"`
	RestoreClipboard  bool          `env:"RESTORE_CLIPBOARD"`

	IconPath            string `env:"ICON_PATH"`
	Headless            bool   `env:"HEADLESS"`
	HeadlessInstruction string `env:"HEADLESS_INSTRUCTION"`
	HistorySize         int    `env:"HISTORY_SIZE"`

	PortStart int `env:"CTRL_AI_PORT_START"`
	PortEnd   int `env:"CTRL_AI_PORT_END"`

	// EnvPath is the .env file that was applied, empty if none.
	EnvPath string
}

// Defaults returns the configuration before .env, environment and flags are applied.
func Defaults() *Config {
	return &Config{
		GeminiModel:         "gemini-2.5-flash",
		GroqModel:           "llama3-70b-8192",
		GroqBaseURL:         "https://api.groq.com/openai/v1/",
		Provider:            ProviderAuto,
		CommanderHotkey:     "Ctrl+Space",
		ExplainHotkey:       "Ctrl+Alt+E",
		EnableFileLogging:   true,
		LogFile:             "debug.log",
		LogLevel:            "debug",
		RequestTimeoutSec:   60,
		MockDelay:           time.Second,
		CopyTimeout:         500 * time.Millisecond,
		PasteDelay:          200 * time.Millisecond,
		RestoreClipboard:    true,
		HeadlessInstruction: DefaultInstruction,
		HistorySize:         50,
		PortStart:           defaultPortStart,
		PortEnd:             defaultPortEnd,
	}
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Sources in priority order:
	// 1) explicit --env-file
	// 2) .env in the executable directory
	// 3) CTRL_AI_ENV pointing at a file
	// 4) .env in the working directory
	envPath := resolveEnvPath(opts.EnvFileOverride)
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.EnvPath = envPath

	cfg.GeminiAPIKey = resolveKey(os.Getenv(GeminiKeyFileVar), cfg.GeminiAPIKey)
	cfg.GroqAPIKey = resolveKey(os.Getenv(GroqKeyFileVar), cfg.GroqAPIKey)

	if p := strings.TrimSpace(opts.ProviderOverride); p != "" {
		cfg.Provider = p
	}
	cfg.Provider = NormalizeProvider(cfg.Provider)
	if opts.Headless != nil {
		cfg.Headless = *opts.Headless
	}
	if cfg.IconPath == "" {
		cfg.IconPath = defaultIconPath()
	}
	if cfg.RequestTimeoutSec <= 0 {
		cfg.RequestTimeoutSec = 60
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 50
	}
	if strings.TrimSpace(cfg.HeadlessInstruction) == "" {
		cfg.HeadlessInstruction = DefaultInstruction
	}
	cfg.PortStart, cfg.PortEnd = clampPorts(cfg.PortStart, cfg.PortEnd)

	return cfg, nil
}

// RequestTimeout is the per-request deadline for provider calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// NormalizeProvider maps user input onto a known provider name; unknown values mean auto.
func NormalizeProvider(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case ProviderGemini, "google":
		return ProviderGemini
	case ProviderGroq:
		return ProviderGroq
	case ProviderMock:
		return ProviderMock
	default:
		return ProviderAuto
	}
}

func resolveEnvPath(override string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}

	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvPathVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		return ".env"
	}

	return ""
}

// resolveKey prefers a non-empty key file over the plain environment value.
func resolveKey(keyPath, envValue string) string {
	if keyPath = strings.TrimSpace(keyPath); keyPath != "" {
		if data, err := os.ReadFile(keyPath); err == nil {
			if fileKey := strings.TrimSpace(string(data)); fileKey != "" {
				return fileKey
			}
		}
	}
	return strings.TrimSpace(envValue)
}

func defaultIconPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return defaultIconName
	}
	return filepath.Join(filepath.Dir(execPath), defaultIconName)
}

// clampPorts keeps the range inside [1024, 65535] and ordered.
func clampPorts(start, end int) (int, int) {
	if start <= 0 {
		start = defaultPortStart
	}
	if end <= 0 {
		end = defaultPortEnd
	}
	if start < 1024 {
		start = 1024
	}
	if end > 65535 {
		end = 65535
	}
	if end < start {
		start, end = end, start
	}
	return start, end
}
