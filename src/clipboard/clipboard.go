package clipboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.design/x/clipboard"

	"ctrl-ai/src/logutil"
)

// ErrNoSelection means the copy chord produced no text.
var ErrNoSelection = errors.New("clipboard: no text selected")

var (
	writeMu sync.Mutex
)

func Init() error {
	return clipboard.Init()
}

// Write performs a mutex-guarded clipboard write to prevent corruption under parallel writes.
func Write(text string) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// Read returns the current text content of the clipboard.
func Read() string {
	return string(clipboard.Read(clipboard.FmtText))
}

// Board is the text clipboard.
type Board interface {
	Read() string
	Write(text string) error
}

// Keys simulates the platform copy and paste chords.
type Keys interface {
	Copy() error
	Paste() error
}

type systemBoard struct{}

func (systemBoard) Read() string            { return Read() }
func (systemBoard) Write(text string) error { return Write(text) }

type Options struct {
	CopyTimeout  time.Duration
	PollInterval time.Duration
	PasteDelay   time.Duration
	// Restore puts the previous clipboard content back after a capture.
	Restore bool
}

func (o Options) withDefaults() Options {
	if o.CopyTimeout <= 0 {
		o.CopyTimeout = 500 * time.Millisecond
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 20 * time.Millisecond
	}
	if o.PasteDelay < 0 {
		o.PasteDelay = 0
	}
	return o
}

// Selection captures highlighted text and pastes replacements.
type Selection struct {
	board  Board
	keys   Keys
	opts   Options
	logger *zap.SugaredLogger
}

// New returns a Selection on the system clipboard and keyboard.
// Init must have been called.
func New(opts Options, logger *zap.SugaredLogger) *Selection {
	return NewWith(systemBoard{}, robotKeys{}, opts, logger)
}

func NewWith(board Board, keys Keys, opts Options, logger *zap.SugaredLogger) *Selection {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Selection{board: board, keys: keys, opts: opts.withDefaults(), logger: logger}
}

// CaptureSelection copies the current selection and returns it with trailing
// whitespace removed. An empty selection is ErrNoSelection.
func (s *Selection) CaptureSelection(ctx context.Context) (string, error) {
	previous := s.board.Read()
	if err := s.board.Write(""); err != nil {
		return "", fmt.Errorf("clear clipboard: %w", err)
	}
	if s.opts.Restore && previous != "" {
		defer func() {
			if err := s.board.Write(previous); err != nil {
				s.logger.Warnf("Clipboard: failed to restore previous content: %v", err)
			}
		}()
	}

	if err := s.keys.Copy(); err != nil {
		return "", fmt.Errorf("simulate copy: %w", err)
	}

	text, err := s.poll(ctx)
	if err != nil {
		return "", err
	}
	text = strings.TrimRight(text, " \t\r\n")
	if text == "" {
		s.logger.Debug("Clipboard: nothing captured")
		return "", ErrNoSelection
	}
	s.logger.Debugf("Clipboard: captured %d chars: %q", len(text), logutil.Sanitize(text))
	return text, nil
}

func (s *Selection) poll(ctx context.Context) (string, error) {
	deadline := time.NewTimer(s.opts.CopyTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(s.opts.PollInterval)
	defer tick.Stop()

	for {
		if text := s.board.Read(); text != "" {
			return text, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline.C:
			return "", nil
		case <-tick.C:
		}
	}
}

// PasteText puts text on the clipboard and simulates the paste chord once the
// settle delay has passed.
func (s *Selection) PasteText(ctx context.Context, text string) error {
	if err := s.board.Write(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	if s.opts.PasteDelay > 0 {
		t := time.NewTimer(s.opts.PasteDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	if err := s.keys.Paste(); err != nil {
		return fmt.Errorf("simulate paste: %w", err)
	}
	s.logger.Debugf("Clipboard: pasted %d chars", len(text))
	return nil
}
