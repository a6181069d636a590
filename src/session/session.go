// Package session runs one request end to end without the overlay: it is the
// pipeline behind the one-shot CLI.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ctrl-ai/src/ai"
	"ctrl-ai/src/clipboard"
)

var ErrEmptyInput = errors.New("input text is empty")

// Processor turns a request into text.
type Processor interface {
	Process(ctx context.Context, req ai.Request) string
}

// ResultTarget receives the outcome of a session.
type ResultTarget interface {
	OnSuccess(res Result) error
	OnFailure(err error) error
}

type Options struct {
	Text        string
	Mode        ai.Mode
	Instruction string
	// Provider is reported in results; it does not select anything.
	Provider  string
	Source    string
	Deadline  time.Duration
	Processor Processor
	Target    ResultTarget
}

type Result struct {
	Text     string
	Mode     ai.Mode
	Provider string
	Source   string
	Elapsed  time.Duration
}

func Execute(ctx context.Context, opts Options) (Result, error) {
	if opts.Processor == nil {
		return Result{}, errors.New("Processor is required")
	}
	if opts.Target == nil {
		return Result{}, errors.New("Target is required")
	}

	text := strings.TrimRight(opts.Text, " \t\r\n")
	if text == "" {
		_ = opts.Target.OnFailure(ErrEmptyInput)
		return Result{}, ErrEmptyInput
	}

	mode := opts.Mode
	if mode == "" {
		mode = ai.ModeCommander
	}

	deadline := opts.Deadline
	if deadline <= 0 {
		deadline = 60 * time.Second
	}
	jobCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	start := time.Now()
	out := opts.Processor.Process(jobCtx, ai.Request{Text: text, Mode: mode, Instruction: opts.Instruction})
	res := Result{
		Text:     out,
		Mode:     mode,
		Provider: opts.Provider,
		Source:   opts.Source,
		Elapsed:  time.Since(start),
	}

	if err := opts.Target.OnSuccess(res); err != nil {
		_ = opts.Target.OnFailure(err)
		return Result{}, err
	}
	return res, nil
}

type ClipboardTarget struct{}

func (ClipboardTarget) OnSuccess(res Result) error {
	if err := clipboard.Write(res.Text); err != nil {
		return fmt.Errorf("clipboard error: %w", err)
	}
	return nil
}

func (ClipboardTarget) OnFailure(err error) error {
	return nil
}

type StdoutTarget struct {
	Writer io.Writer
}

func (t StdoutTarget) OnSuccess(res Result) error {
	_, err := fmt.Fprint(writerOrStdout(t.Writer), res.Text)
	return err
}

func (t StdoutTarget) OnFailure(err error) error {
	return nil
}

// JSONResult is the --json output document.
type JSONResult struct {
	Text      string  `json:"text"`
	Mode      string  `json:"mode"`
	Provider  string  `json:"provider,omitempty"`
	Source    string  `json:"source,omitempty"`
	Timestamp string  `json:"timestamp"`
	Duration  float64 `json:"duration_seconds"`
	CharCount int     `json:"character_count"`
}

type JSONTarget struct {
	Writer io.Writer
	// Now is overridable for tests.
	Now func() time.Time
}

func (t JSONTarget) OnSuccess(res Result) error {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	doc := JSONResult{
		Text:      res.Text,
		Mode:      res.Mode.String(),
		Provider:  res.Provider,
		Source:    res.Source,
		Timestamp: now().UTC().Format(time.RFC3339),
		Duration:  res.Elapsed.Seconds(),
		CharCount: len([]rune(res.Text)),
	}
	encoder := json.NewEncoder(writerOrStdout(t.Writer))
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

func (t JSONTarget) OnFailure(err error) error {
	return nil
}

func writerOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
