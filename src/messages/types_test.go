package messages

import (
	"testing"

	"ctrl-ai/src/ai"
)

func TestTypes(t *testing.T) {
	tests := []struct {
		msg  Message
		want string
	}{
		{CommanderTriggered{}, TypeCommanderTriggered},
		{ExplainTriggered{}, TypeExplainTriggered},
		{PromptSubmitted{Prompt: "x"}, TypePromptSubmitted},
		{PromptCancelled{}, TypePromptCancelled},
		{ReviewAccepted{}, TypeReviewAccepted},
		{ReviewRejected{}, TypeReviewRejected},
		{QuitRequested{}, TypeQuitRequested},
	}
	for _, tt := range tests {
		if got := tt.msg.Type(); got != tt.want {
			t.Errorf("%T.Type() = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestTriggerFor(t *testing.T) {
	m, ok := TriggerFor(ai.ModeExplain, "ipc")
	if !ok {
		t.Fatal("expected explain trigger")
	}
	if e, _ := m.(ExplainTriggered); e.Source != "ipc" {
		t.Errorf("source = %q", e.Source)
	}
	if _, ok := TriggerFor(ai.Mode("nope"), "ipc"); ok {
		t.Error("unknown mode should not map to a trigger")
	}
}
