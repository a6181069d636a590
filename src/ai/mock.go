package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockProvider returns deterministic canned text after a simulated network delay.
type MockProvider struct {
	Delay time.Duration
}

func (MockProvider) Name() string { return "mock" }

func (m MockProvider) Complete(ctx context.Context, req Request) (string, error) {
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
		}
	}
	return MockResponse(req), nil
}

// MockResponse is the fallback text for a request.
func MockResponse(req Request) string {
	switch req.Mode {
	case ModeCommander:
		return fmt.Sprintf("[Commander: %s] %s", req.Instruction, req.Text)
	case ModeExplain:
		return fmt.Sprintf("[Explanation] This text contains %d words and appears to be a code/text snippet.", len(strings.Fields(req.Text)))
	default:
		return req.Text
	}
}
