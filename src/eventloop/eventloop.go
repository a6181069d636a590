package eventloop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ctrl-ai/src/ai"
	"ctrl-ai/src/clipboard"
	"ctrl-ai/src/logutil"
	"ctrl-ai/src/messages"
	"ctrl-ai/src/singleinstance"
	"ctrl-ai/src/worker"
)

const (
	busyMessage       = "Busy, please retry"
	noSelectionToast  = "No text selected"
	noSelectionToastD = time.Second
	busyToastD        = 2 * time.Second
	defaultDeadline   = 60 * time.Second
	previewRunes      = 60
)

// UI is the overlay surface the loop drives. Implementations must be safe to
// call from the loop goroutine.
type UI interface {
	ShowPrompt(mode ai.Mode)
	ShowToast(msg string, autoHide time.Duration)
	HideToast()
	ShowReview(original, proposal string)
	ShowExplanation(text string)
}

// Capturer grabs the current selection.
type Capturer interface {
	CaptureSelection(ctx context.Context) (string, error)
}

// Paster replaces the selection with text.
type Paster interface {
	PasteText(ctx context.Context, text string) error
}

type Options struct {
	// UI is nil in headless mode.
	UI        UI
	Capturer  Capturer
	Paster    Paster
	Processor worker.Processor
	// Copy puts text on the clipboard without pasting (headless explain).
	Copy func(text string) error
	// OnBusy reports job state changes, e.g. to the tray tooltip.
	OnBusy              func(busy bool)
	Server              singleinstance.Server
	Workers             int
	Deadline            time.Duration
	HeadlessInstruction string
	Logger              *zap.SugaredLogger
}

// Loop is the single-threaded coordinator for hotkey, IPC and UI messages.
type Loop struct {
	opts     Options
	logger   *zap.SugaredLogger
	pool     *worker.Pool
	inbox    chan messages.Message
	results  chan result
	deadline time.Duration

	busy bool
	text string
	mode ai.Mode
}

type result struct {
	res    worker.Result
	cancel context.CancelFunc
}

// New creates a new event loop. A zero Deadline means 60s.
func New(opts Options) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	deadline := opts.Deadline
	if deadline <= 0 {
		deadline = defaultDeadline
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Loop{
		opts:     opts,
		logger:   logger,
		pool:     worker.New(workers, opts.Processor, logger),
		inbox:    make(chan messages.Message, 16),
		results:  make(chan result, 1),
		deadline: deadline,
	}
}

func (l *Loop) headless() bool { return l.opts.UI == nil }

// Post queues msg for the loop without blocking. It reports false when the
// inbox is full and the message was dropped.
func (l *Loop) Post(msg messages.Message) bool {
	select {
	case l.inbox <- msg:
		return true
	default:
		l.logger.Warnf("eventloop: inbox full, dropping %s", msg.Type())
		return false
	}
}

// Run processes messages until ctx is cancelled or a QuitRequested arrives.
func (l *Loop) Run(ctx context.Context) error {
	defer l.pool.Close()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var reqCh chan singleinstance.Conn
	if l.opts.Server != nil {
		reqCh = make(chan singleinstance.Conn, 4)
		go func() {
			defer close(reqCh)
			for {
				conn, err := l.opts.Server.Next(ctx)
				if err != nil {
					return
				}
				select {
				case reqCh <- conn:
				case <-ctx.Done():
					_ = conn.Close()
					return
				}
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-l.inbox:
			if _, ok := msg.(messages.QuitRequested); ok {
				l.logger.Info("eventloop: quit requested")
				return nil
			}
			l.handle(ctx, msg)
		case conn, ok := <-reqCh:
			if !ok {
				reqCh = nil
				continue
			}
			l.handleConn(ctx, conn)
		case r := <-l.results:
			l.handleResult(ctx, r)
		}
	}
}

func (l *Loop) handle(ctx context.Context, msg messages.Message) {
	switch m := msg.(type) {
	case messages.CommanderTriggered:
		l.handleTrigger(ctx, ai.ModeCommander, m.Source)
	case messages.ExplainTriggered:
		l.handleTrigger(ctx, ai.ModeExplain, m.Source)
	case messages.PromptSubmitted:
		l.handlePrompt(ctx, m.Prompt)
	case messages.PromptCancelled:
		l.logger.Debug("eventloop: prompt cancelled")
		l.text = ""
	case messages.ReviewAccepted:
		l.handleAccepted(ctx, m.Text)
	case messages.ReviewRejected:
		l.logger.Info("eventloop: proposal rejected")
	default:
		l.logger.Warnf("eventloop: unhandled message %s", msg.Type())
	}
}

func (l *Loop) handleConn(ctx context.Context, conn singleinstance.Conn) {
	defer conn.Close()
	req := conn.Request()
	msg, ok := messages.TriggerFor(req.Mode, "ipc")
	if !ok {
		_ = conn.RespondError(fmt.Sprintf("unknown action %q", req.Mode))
		return
	}
	if l.busy {
		_ = conn.RespondError(busyMessage)
		return
	}
	if err := conn.RespondOK(); err != nil {
		l.logger.Warnf("eventloop: failed to acknowledge trigger: %v", err)
	}
	l.handle(ctx, msg)
}

func (l *Loop) handleTrigger(ctx context.Context, mode ai.Mode, source string) {
	l.logger.Infof("%s triggered (%s)", mode.Title(), source)
	if l.busy {
		l.logger.Info("eventloop: busy, skipping trigger")
		l.toast(busyMessage, busyToastD)
		return
	}

	text, err := l.opts.Capturer.CaptureSelection(ctx)
	if err != nil {
		if errors.Is(err, clipboard.ErrNoSelection) {
			l.logger.Infof("%s: no text selected", mode.Title())
			if mode == ai.ModeExplain {
				l.toast(noSelectionToast, noSelectionToastD)
			}
			return
		}
		l.logger.Errorf("%s: capture failed: %v", mode.Title(), err)
		return
	}

	l.text = text
	l.mode = mode
	l.logger.Debugf("%s: captured %d chars: %s", mode.Title(), len([]rune(text)), logutil.Sanitize(logutil.Preview(text, previewRunes)))

	if l.headless() {
		instruction := ""
		if mode == ai.ModeCommander {
			instruction = l.opts.HeadlessInstruction
		}
		l.submit(ctx, instruction)
		return
	}
	l.opts.UI.ShowPrompt(mode)
}

func (l *Loop) handlePrompt(ctx context.Context, prompt string) {
	if l.text == "" {
		l.logger.Warn("eventloop: prompt submitted without captured text, ignoring")
		return
	}
	if l.busy {
		l.toast(busyMessage, busyToastD)
		return
	}
	l.submit(ctx, prompt)
}

func (l *Loop) submit(ctx context.Context, instruction string) {
	req := ai.Request{Text: l.text, Mode: l.mode, Instruction: instruction}
	jobCtx, cancel := context.WithTimeout(ctx, l.deadline)

	l.setBusy(true)
	jobID, err := l.pool.Submit(jobCtx, req, func(res worker.Result) {
		select {
		case l.results <- result{res: res, cancel: cancel}:
		case <-ctx.Done():
			cancel()
		}
	})
	if err != nil {
		cancel()
		l.setBusy(false)
		l.logger.Warnf("eventloop: submit failed: %v", err)
		l.toast(busyMessage, busyToastD)
		return
	}
	l.logger.Infof("%s job %s dispatched", req.Mode.Title(), jobID)

	if req.Mode == ai.ModeCommander {
		l.toast(fmt.Sprintf("Commander: %s...", instruction), 0)
	} else {
		l.toast("Explaining...", 0)
	}
}

func (l *Loop) handleResult(ctx context.Context, r result) {
	defer func() {
		l.setBusy(false)
		if r.cancel != nil {
			r.cancel()
		}
	}()
	if !l.headless() {
		l.opts.UI.HideToast()
	}

	res := r.res
	l.logger.Infof("%s job %s finished in %v (%d chars)", res.Request.Mode.Title(), res.JobID, res.Elapsed.Round(time.Millisecond), len(res.Text))

	switch res.Request.Mode {
	case ai.ModeCommander:
		if l.headless() {
			if err := l.opts.Paster.PasteText(ctx, res.Text); err != nil {
				l.logger.Errorf("Commander: paste failed: %v", err)
			}
			return
		}
		l.opts.UI.ShowReview(res.Request.Text, res.Text)
	case ai.ModeExplain:
		if l.headless() {
			l.logger.Infof("Explanation: %s", logutil.Sanitize(logutil.Preview(res.Text, previewRunes)))
			if l.opts.Copy != nil {
				if err := l.opts.Copy(res.Text); err != nil {
					l.logger.Errorf("Explain: clipboard write failed: %v", err)
				}
			}
			return
		}
		l.opts.UI.ShowExplanation(res.Text)
	default:
		l.logger.Warnf("eventloop: result for unknown mode %q", res.Request.Mode)
	}
}

func (l *Loop) handleAccepted(ctx context.Context, text string) {
	l.logger.Infof("Commander: proposal accepted (%d chars)", len(text))
	if err := l.opts.Paster.PasteText(ctx, text); err != nil {
		l.logger.Errorf("Commander: paste failed: %v", err)
	}
}

func (l *Loop) setBusy(b bool) {
	l.busy = b
	if l.opts.OnBusy != nil {
		l.opts.OnBusy(b)
	}
}

func (l *Loop) toast(msg string, d time.Duration) {
	if l.headless() {
		l.logger.Info(msg)
		return
	}
	l.opts.UI.ShowToast(msg, d)
}
