package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctrl-ai/src/ai"
	"ctrl-ai/src/config"
	"ctrl-ai/src/singleinstance"
)

func TestNormalizeLegacyArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		out  []string
	}{
		{
			name: "Normalizes long single dash flags",
			in:   []string{"ctrl-ai", "-headless", "-env-file", "/tmp/.env"},
			out:  []string{"ctrl-ai", "--headless", "--env-file", "/tmp/.env"},
		},
		{
			name: "Normalizes equals form",
			in:   []string{"ctrl-ai", "-provider=groq", "-headless=false"},
			out:  []string{"ctrl-ai", "--provider=groq", "--headless=false"},
		},
		{
			name: "Leaves other args unchanged",
			in:   []string{"ctrl-ai", "trigger", "explain", "--other"},
			out:  []string{"ctrl-ai", "trigger", "explain", "--other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, normalizeLegacyArgs(tt.in))
		})
	}
}

func TestNewRootCmdParsesFlags(t *testing.T) {
	opts := &mainOptions{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--headless", "--provider", "mock", "--env-file", "/tmp/x.env"}))

	lo := loadOptions(cmd, opts)
	assert.Equal(t, "/tmp/x.env", lo.EnvFileOverride)
	assert.Equal(t, "mock", lo.ProviderOverride)
	require.NotNil(t, lo.Headless)
	assert.True(t, *lo.Headless)
}

func TestLoadOptionsLeavesHeadlessUnsetByDefault(t *testing.T) {
	opts := &mainOptions{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags(nil))
	assert.Nil(t, loadOptions(cmd, opts).Headless)
}

func TestTriggerRejectsUnknownMode(t *testing.T) {
	err := runWithArgs(context.Background(), []string{"ctrl-ai", "trigger", "dance"})
	require.Error(t, err)
}

type fakeClient struct {
	mode ai.Mode
	err  error
}

func (f *fakeClient) Trigger(ctx context.Context, mode ai.Mode) error {
	f.mode = mode
	return f.err
}

func TestTrigger(t *testing.T) {
	c := &fakeClient{}
	require.NoError(t, trigger(context.Background(), c, ai.ModeExplain))
	assert.Equal(t, ai.ModeExplain, c.mode)

	c = &fakeClient{err: singleinstance.ErrNoResident}
	err := trigger(context.Background(), c, ai.ModeCommander)
	assert.ErrorIs(t, err, singleinstance.ErrNoResident)
	assert.Contains(t, err.Error(), "start ctrl-ai first")

	c = &fakeClient{err: errors.New("ERROR: Busy, please retry")}
	err = trigger(context.Background(), c, ai.ModeCommander)
	assert.Contains(t, err.Error(), "trigger commander")
}

func TestPrintBanner(t *testing.T) {
	cfg := config.Defaults()
	cfg.Headless = true
	var buf bytes.Buffer
	printBanner(&buf, cfg, "mock")

	out := buf.String()
	assert.Contains(t, out, "Commander: Ctrl+Space")
	assert.Contains(t, out, "Explain:   Ctrl+Alt+E")
	assert.Contains(t, out, "Provider:  mock")
	assert.Contains(t, out, "headless")
}

func TestBindingsUseConfiguredCombos(t *testing.T) {
	cfg := config.Defaults()
	cfg.CommanderHotkey = "Ctrl+Shift+K"
	b := bindings(cfg, nil)
	require.Len(t, b, 2)
	assert.Equal(t, "commander", b[0].Name)
	assert.Equal(t, "Ctrl+Shift+K", b[0].Combo)
	assert.Equal(t, "explain", b[1].Name)
	assert.Equal(t, "Ctrl+Alt+E", b[1].Combo)
}
