// Package ai turns captured text plus a user instruction into model output.
// A Handler owns one Provider chosen from the configured credentials and
// degrades to canned mock text whenever the remote call fails.
package ai

import (
	"context"
	"fmt"
	"strings"
)

type Mode string

const (
	ModeCommander Mode = "commander"
	ModeExplain   Mode = "explain"
)

// ParseMode accepts the CLI spelling of a mode; unknown values are returned as-is
// so they reach the generic prompt path.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "commander", "command", "c":
		return ModeCommander
	case "explain", "e":
		return ModeExplain
	default:
		return Mode(strings.ToLower(strings.TrimSpace(s)))
	}
}

func (m Mode) String() string { return string(m) }

// Title is the capitalised mode name used in log prefixes and toasts.
func (m Mode) Title() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// Request is one unit of work for a provider.
type Request struct {
	Text string
	Mode Mode
	// Instruction is the commander command or the explain question.
	Instruction string
}

// Provider is a remote (or fake) model backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// ProviderError tags a failure with the backend that produced it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
