package textops

import (
	"regexp"
	"strings"
)

// ParsedMessage is the structural decomposition of a message. Any subset
// of subject, greeting and signature may be present; body is always
// populated. Concatenating the four parts reproduces the input up to
// whitespace normalization.
type ParsedMessage struct {
	Subject   string `json:"subject"`
	Greeting  string `json:"greeting"`
	Body      string `json:"body"`
	Signature string `json:"signature"`
}

var (
	subjectRe  = regexp.MustCompile(`(?i)^\s*subject\s*:\s*(.*)$`)
	greetingRe = regexp.MustCompile(`(?i)^(hi|hello|dear|good day|greetings|hey)\b`)
	// Longer phrases listed first so they win over their prefixes.
	closingRe   = regexp.MustCompile(`(?i)^(warm regards|thank you|best regards|kind regards|regards|sincerely|thanks|best|cheers|yours|truly)\b`)
	separatorRe = regexp.MustCompile(`^-{2,3}$`)
)

// maxGreetingLen rejects long sentences that merely open with a greeting
// word ("Hi everyone, following up on the long discussion we had...").
const maxGreetingLen = 60

// maxClosingLen rejects body sentences that open with a closing word
// ("Thanks to the migration, latency dropped 40%"). Short lines like
// "Best," or "Warm regards," stay under it.
const maxClosingLen = 40

// ExtractParts splits free-form message text into subject, greeting, body
// and signature using ordered heuristic rules. It never fails: when no
// structure is detected the whole input becomes the body. Rule order
// matters: the subject line is stripped before greeting detection so the
// greeting rule sees the first content line, and the signature scan runs
// on the post-greeting remainder.
func ExtractParts(text string) ParsedMessage {
	if strings.TrimSpace(text) == "" {
		return ParsedMessage{Body: text}
	}

	working := strings.ReplaceAll(text, "\r\n", "\n")

	subject, working := ruleSubject(working)
	greeting, working := ruleGreeting(working)
	body, signature := ruleSignature(working)

	if strings.TrimSpace(body) == "" {
		// Degenerate input (e.g. a bare sign-off): keep the remainder as
		// the body rather than returning an empty one.
		body = strings.TrimSpace(working)
		signature = ""
	}

	return ParsedMessage{
		Subject:   subject,
		Greeting:  greeting,
		Body:      body,
		Signature: signature,
	}
}

// ruleSubject captures a leading "Subject:" line (case-insensitive) and
// returns the subject text plus the remaining lines.
func ruleSubject(text string) (subject, rest string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := subjectRe.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), strings.Join(lines[i+1:], "\n")
		}
		break
	}
	return "", text
}

// ruleGreeting captures the first non-empty line when it opens with a
// greeting word and is short enough to be a salutation rather than a
// sentence.
func ruleGreeting(text string) (greeting, rest string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if greetingRe.MatchString(trimmed) && len(trimmed) < maxGreetingLen {
			return trimmed, strings.Join(lines[i+1:], "\n")
		}
		break
	}
	return "", text
}

// ruleSignature scans for the first closing-word line or horizontal-rule
// separator; everything from that line onward is the signature,
// everything before it the body.
func ruleSignature(text string) (body, signature string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isClosingLine(trimmed) {
			body = strings.TrimSpace(strings.Join(lines[:i], "\n"))
			signature = strings.TrimSpace(strings.Join(lines[i:], "\n"))
			return body, signature
		}
	}
	return strings.TrimSpace(text), ""
}

func isClosingLine(trimmed string) bool {
	if separatorRe.MatchString(trimmed) {
		return true
	}
	return closingRe.MatchString(trimmed) && len(trimmed) < maxClosingLen
}
