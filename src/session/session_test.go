package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctrl-ai/src/ai"
)

type mockProcessor struct {
	got ai.Request
}

func (m *mockProcessor) Process(_ context.Context, req ai.Request) string {
	m.got = req
	return ai.MockResponse(req)
}

type recordingTarget struct {
	success *Result
	failure error
	fail    error
}

func (r *recordingTarget) OnSuccess(res Result) error {
	if r.fail != nil {
		return r.fail
	}
	r.success = &res
	return nil
}

func (r *recordingTarget) OnFailure(err error) error {
	r.failure = err
	return nil
}

func TestExecuteSuccess(t *testing.T) {
	proc := &mockProcessor{}
	target := &recordingTarget{}

	res, err := Execute(context.Background(), Options{
		Text:        "teh cat\n",
		Mode:        ai.ModeCommander,
		Instruction: "Fix",
		Provider:    "mock",
		Processor:   proc,
		Target:      target,
	})
	require.NoError(t, err)
	assert.Equal(t, "[Commander: Fix] teh cat", res.Text)
	assert.Equal(t, "teh cat", proc.got.Text)
	require.NotNil(t, target.success)
	assert.Equal(t, "mock", target.success.Provider)
}

func TestExecuteDefaultsToCommander(t *testing.T) {
	proc := &mockProcessor{}
	_, err := Execute(context.Background(), Options{Text: "x", Processor: proc, Target: &recordingTarget{}})
	require.NoError(t, err)
	assert.Equal(t, ai.ModeCommander, proc.got.Mode)
}

func TestExecuteEmptyInput(t *testing.T) {
	target := &recordingTarget{}
	_, err := Execute(context.Background(), Options{Text: " \n", Processor: &mockProcessor{}, Target: target})
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.ErrorIs(t, target.failure, ErrEmptyInput)
}

func TestExecuteDeliveryFailure(t *testing.T) {
	boom := errors.New("stdout closed")
	target := &recordingTarget{fail: boom}
	_, err := Execute(context.Background(), Options{Text: "x", Processor: &mockProcessor{}, Target: target})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, target.failure, boom)
}

func TestExecuteRequiresProcessorAndTarget(t *testing.T) {
	_, err := Execute(context.Background(), Options{Text: "x", Target: &recordingTarget{}})
	assert.Error(t, err)
	_, err = Execute(context.Background(), Options{Text: "x", Processor: &mockProcessor{}})
	assert.Error(t, err)
}

func TestStdoutTarget(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, StdoutTarget{Writer: &buf}.OnSuccess(Result{Text: "hello"}))
	assert.Equal(t, "hello", buf.String())
}

func TestJSONTarget(t *testing.T) {
	var buf bytes.Buffer
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	target := JSONTarget{Writer: &buf, Now: func() time.Time { return fixed }}

	err := target.OnSuccess(Result{Text: "héllo", Mode: ai.ModeExplain, Provider: "groq", Source: "-", Elapsed: 1500 * time.Millisecond})
	require.NoError(t, err)

	var doc JSONResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, JSONResult{
		Text:      "héllo",
		Mode:      "explain",
		Provider:  "groq",
		Source:    "-",
		Timestamp: "2026-01-02T03:04:05Z",
		Duration:  1.5,
		CharCount: 5,
	}, doc)
}
