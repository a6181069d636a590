package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"ctrl-ai/src/ai"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// opencensus starts its view worker at init via the provider SDKs.
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

type echoProcessor struct{}

func (echoProcessor) Process(_ context.Context, req ai.Request) string {
	return "echo:" + req.Text
}

// gateProcessor blocks until release is closed.
type gateProcessor struct {
	started chan struct{}
	release chan struct{}
}

func (g gateProcessor) Process(ctx context.Context, req ai.Request) string {
	g.started <- struct{}{}
	<-g.release
	return req.Text
}

func TestSubmitDeliversResult(t *testing.T) {
	p := New(1, echoProcessor{}, nil)
	defer p.Close()

	done := make(chan Result, 1)
	id, err := p.Submit(context.Background(), ai.Request{Text: "hi", Mode: ai.ModeExplain}, func(r Result) { done <- r })
	require.NoError(t, err)
	_, perr := uuid.Parse(id)
	require.NoError(t, perr)

	select {
	case r := <-done:
		assert.Equal(t, id, r.JobID)
		assert.Equal(t, "echo:hi", r.Text)
		assert.Equal(t, ai.ModeExplain, r.Request.Mode)
	case <-time.After(2 * time.Second):
		t.Fatal("result not delivered")
	}
}

func TestSubmitBusyWhenQueueFull(t *testing.T) {
	g := gateProcessor{started: make(chan struct{}, 1), release: make(chan struct{})}
	p := New(1, g, nil)

	_, err := p.Submit(context.Background(), ai.Request{Text: "a"}, nil)
	require.NoError(t, err)
	<-g.started

	// Worker busy, this fills the single slot.
	_, err = p.Submit(context.Background(), ai.Request{Text: "b"}, nil)
	require.NoError(t, err)

	_, err = p.Submit(context.Background(), ai.Request{Text: "c"}, nil)
	assert.True(t, errors.Is(err, ErrBusy))

	close(g.release)
	<-g.started
	p.Close()
}

func TestCloseIsIdempotent(t *testing.T) {
	p := New(2, echoProcessor{}, nil)
	p.Close()
	p.Close()
}
