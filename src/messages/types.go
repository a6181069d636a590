package messages

import "ctrl-ai/src/ai"

// Message is the base interface for everything posted to the event loop.
type Message interface {
	Type() string
}

// MessageType constants for type identification
const (
	TypeCommanderTriggered = "CommanderTriggered"
	TypeExplainTriggered   = "ExplainTriggered"
	TypePromptSubmitted    = "PromptSubmitted"
	TypePromptCancelled    = "PromptCancelled"
	TypeReviewAccepted     = "ReviewAccepted"
	TypeReviewRejected     = "ReviewRejected"
	TypeQuitRequested      = "QuitRequested"
)

// CommanderTriggered - sent by the hotkey listener or IPC when the commander combo fires
type CommanderTriggered struct {
	Source string // "hotkey" or "ipc"
}

func (m CommanderTriggered) Type() string { return TypeCommanderTriggered }

// ExplainTriggered - sent by the hotkey listener or IPC when the explain combo fires
type ExplainTriggered struct {
	Source string
}

func (m ExplainTriggered) Type() string { return TypeExplainTriggered }

// PromptSubmitted - sent by the input bar when the user presses Enter
type PromptSubmitted struct {
	Prompt string
}

func (m PromptSubmitted) Type() string { return TypePromptSubmitted }

// PromptCancelled - sent by the input bar on Escape
type PromptCancelled struct{}

func (m PromptCancelled) Type() string { return TypePromptCancelled }

// ReviewAccepted - sent by the diff window with the (possibly edited) proposal
type ReviewAccepted struct {
	Text string
}

func (m ReviewAccepted) Type() string { return TypeReviewAccepted }

// ReviewRejected - sent by the diff window when the proposal is discarded
type ReviewRejected struct{}

func (m ReviewRejected) Type() string { return TypeReviewRejected }

// QuitRequested - sent by the tray menu or a signal handler
type QuitRequested struct{}

func (m QuitRequested) Type() string { return TypeQuitRequested }

// TriggerFor maps a mode to its trigger message.
func TriggerFor(mode ai.Mode, source string) (Message, bool) {
	switch mode {
	case ai.ModeCommander:
		return CommanderTriggered{Source: source}, true
	case ai.ModeExplain:
		return ExplainTriggered{Source: source}, true
	default:
		return nil, false
	}
}
