package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ctrl-ai/src/ai"
)

// ErrBusy is returned by Submit when the single-slot queue is occupied.
var ErrBusy = errors.New("worker: busy")

// Processor turns a request into text. *ai.Handler satisfies it.
type Processor interface {
	Process(ctx context.Context, req ai.Request) string
}

// Result is delivered to the submitter's callback from a worker goroutine.
type Result struct {
	JobID   string
	Request ai.Request
	Text    string
	Elapsed time.Duration
}

// ResultCallback is invoked on job completion (from a worker goroutine).
// The event loop should pass a closure that posts back into the event loop safely.
type ResultCallback func(Result)

// Pool is a fixed-size worker pool with a 1-slot input queue (strict back-pressure).
type Pool struct {
	proc      Processor
	logger    *zap.SugaredLogger
	jobs      chan job
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type job struct {
	id  string
	ctx context.Context
	req ai.Request
	cb  ResultCallback
}

// New creates a worker pool. Size defaults to NumCPU when size<=0. Queue is 1 slot.
func New(size int, proc Processor, logger *zap.SugaredLogger) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	p := &Pool{proc: proc, logger: logger, jobs: make(chan job, 1)}
	p.start(size)
	return p
}

func (p *Pool) start(n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				p.run(j)
			}
		}()
	}
}

func (p *Pool) run(j job) {
	log := p.logger.With("job", j.id, "mode", j.req.Mode)
	log.Debugf("Worker: starting job (%d chars)", len(j.req.Text))
	start := time.Now()
	text := p.proc.Process(j.ctx, j.req)
	res := Result{JobID: j.id, Request: j.req, Text: text, Elapsed: time.Since(start)}
	log.Debugf("Worker: job completed in %v, result length=%d", res.Elapsed, len(text))
	if j.cb != nil {
		j.cb(res)
	}
}

// Submit enqueues a job if the single-slot queue is free and returns its id.
func (p *Pool) Submit(ctx context.Context, req ai.Request, cb ResultCallback) (string, error) {
	j := job{id: uuid.NewString(), ctx: ctx, req: req, cb: cb}
	select {
	case p.jobs <- j:
		return j.id, nil
	default:
		return "", ErrBusy
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	p.closeOnce.Do(func() { close(p.jobs) })
	p.wg.Wait()
}
