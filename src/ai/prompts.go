package ai

import "fmt"

const (
	educatorPrompt = "You are an expert technical educator. Explain the selected text or code clearly and concisely. " +
		"Do not explain what you are doing, just provide the explanation."

	geminiCommanderPrompt = "Execute the user's specific instruction on the text. Output ONLY the result."
	genericPrompt         = "Process the following text:"

	groqCommanderPrompt = "You are a helpful AI assistant integrated into the user's OS. " +
		"Execute the user's specific instruction on the provided text. " +
		"Output ONLY the result. Do not add quotes around the result unless requested."
)

// prompt is a system/user pair ready to send.
type prompt struct {
	System string
	User   string
}

func geminiPrompt(req Request) prompt {
	switch req.Mode {
	case ModeCommander:
		return prompt{
			System: geminiCommanderPrompt,
			User:   fmt.Sprintf("Instruction: %s\n\nText:\n%s", req.Instruction, req.Text),
		}
	case ModeExplain:
		return prompt{System: educatorPrompt, User: withQuestion(req.Text, req.Instruction)}
	default:
		return prompt{System: genericPrompt, User: req.Text}
	}
}

// flatten joins the system instruction onto the user content; the Gemini path
// sends a single prompt.
func (p prompt) flatten() string {
	return p.System + "\n\n" + p.User
}

func groqPrompt(req Request) prompt {
	switch req.Mode {
	case ModeCommander:
		return prompt{
			System: groqCommanderPrompt,
			User:   fmt.Sprintf("Instruction: %s\n\nText to process:\n%s", req.Instruction, req.Text),
		}
	case ModeExplain:
		return prompt{
			System: educatorPrompt,
			User:   withQuestion("Explain this:\n\n"+req.Text, req.Instruction),
		}
	default:
		return prompt{System: genericPrompt, User: req.Text}
	}
}

func withQuestion(body, question string) string {
	if question == "" {
		return body
	}
	return body + "\n\nQuestion: " + question
}
