package enhance

import (
	"fmt"

	"github.com/Jmaradona/makeitshorter-sub000/internal/prompts"
	"github.com/Jmaradona/makeitshorter-sub000/internal/textops"
)

const promptFile = "enhance.json"

// promptPair is the system/user instruction pair sent to the backend.
type promptPair struct {
	System string
	User   string
}

// buildPrompt constructs the first-attempt prompt. The system prompt
// restates the word counting rule so the backend counts the way
// CountWords does; the user prompt carries the numeric target, the tone
// verbatim, and the structural requirements for structured input types.
func buildPrompt(req *Request, parsed textops.ParsedMessage) promptPair {
	system := prompts.MustGet(promptFile, "system")

	exactness := "approximately"
	strictNote := ""
	if req.EnforceExactWordCount {
		exactness = "exactly"
		strictNote = prompts.Format(prompts.MustGet(promptFile, "strict_note"), map[string]string{
			"TargetWords": fmt.Sprintf("%d", req.TargetWords),
		})
	}

	data := map[string]string{
		"Tone":        req.Tone,
		"TargetWords": fmt.Sprintf("%d", req.TargetWords),
		"Exactness":   exactness,
		"StrictNote":  strictNote,
		"Content":     req.Content,
	}

	key := "task_plain"
	if req.InputType.Structured() {
		key = "task_structured"
		data["SubjectHint"] = hint(" Prefer keeping the original subject: \"%s\".", parsed.Subject)
		data["GreetingHint"] = hint(" Prefer keeping the original greeting: \"%s\".", parsed.Greeting)
		data["SignatureHint"] = hint(" Prefer keeping the original sign-off: \"%s\".", parsed.Signature)
	}

	return promptPair{
		System: system,
		User:   prompts.Format(prompts.MustGet(promptFile, key), data),
	}
}

// buildCorrectionPrompt constructs the single retry prompt for strict
// requests whose first output missed the target. It reuses the same
// system prompt; only the user instruction is specialized.
func buildCorrectionPrompt(req *Request, previous string, actualWords int) promptPair {
	return promptPair{
		System: prompts.MustGet(promptFile, "system"),
		User: prompts.Format(prompts.MustGet(promptFile, "correction"), map[string]string{
			"Previous":    previous,
			"ActualWords": fmt.Sprintf("%d", actualWords),
			"TargetWords": fmt.Sprintf("%d", req.TargetWords),
		}),
	}
}

// hint formats a preservation hint, or returns empty when there is
// nothing to preserve.
func hint(format, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(format, value)
}
