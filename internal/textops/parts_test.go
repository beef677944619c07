package textops

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractParts_FullEmail(t *testing.T) {
	input := "Subject: Quarterly Update\n\nHi team,\n\nBody text here.\n\nBest,\nAlex"

	parts := ExtractParts(input)

	assert.Equal(t, "Quarterly Update", parts.Subject)
	assert.Equal(t, "Hi team,", parts.Greeting)
	assert.Equal(t, "Body text here.", parts.Body)
	assert.Equal(t, "Best,\nAlex", parts.Signature)
}

func TestExtractParts_NoStructure(t *testing.T) {
	input := "Just a plain message with no email furniture at all in it."

	parts := ExtractParts(input)

	assert.Empty(t, parts.Subject)
	assert.Empty(t, parts.Greeting)
	assert.Equal(t, input, parts.Body)
	assert.Empty(t, parts.Signature)
}

func TestExtractParts_EmptyInput(t *testing.T) {
	parts := ExtractParts("")
	assert.Equal(t, ParsedMessage{}, parts)

	parts = ExtractParts("   ")
	assert.Equal(t, "   ", parts.Body)
}

func TestExtractParts_IdempotentOnBody(t *testing.T) {
	input := "Subject: Hello\n\nDear Sam,\n\nThe report is attached below.\n\nRegards,\nPat"
	first := ExtractParts(input)

	second := ExtractParts(first.Body)

	assert.Empty(t, second.Subject)
	assert.Empty(t, second.Greeting)
	assert.Equal(t, first.Body, second.Body)
	assert.Empty(t, second.Signature)
}

func TestExtractParts_SubjectCaseInsensitive(t *testing.T) {
	parts := ExtractParts("SUBJECT: shouting\n\nContent line.")
	assert.Equal(t, "shouting", parts.Subject)
	assert.Equal(t, "Content line.", parts.Body)
}

func TestExtractParts_SubjectOnlyOnFirstContentLine(t *testing.T) {
	// A "Subject:" mention mid-text is body content, not a header.
	input := "The field labelled subject matters here.\nSubject: not a header"
	parts := ExtractParts(input)
	assert.Empty(t, parts.Subject)
}

func TestExtractParts_GreetingWithoutSubject(t *testing.T) {
	parts := ExtractParts("Hello Maria,\n\nCan we move the sync to Thursday afternoon instead?")
	assert.Empty(t, parts.Subject)
	assert.Equal(t, "Hello Maria,", parts.Greeting)
	assert.Equal(t, "Can we move the sync to Thursday afternoon instead?", parts.Body)
}

func TestExtractParts_LongGreetingLineIsBody(t *testing.T) {
	line := "Hi everyone, following up on the very long discussion we had yesterday about the rollout"
	parts := ExtractParts(line)
	assert.Empty(t, parts.Greeting)
	assert.Equal(t, line, parts.Body)
}

func TestExtractParts_GreetingPrefixNeedsWordBoundary(t *testing.T) {
	parts := ExtractParts("Higher prices are coming next quarter.")
	assert.Empty(t, parts.Greeting)

	parts = ExtractParts("Heyday of the project is over.")
	assert.Empty(t, parts.Greeting)
}

func TestExtractParts_SeparatorSignature(t *testing.T) {
	input := "Status is green across the board.\n\n--\nAlex Chen\nPlatform Team"
	parts := ExtractParts(input)
	assert.Equal(t, "Status is green across the board.", parts.Body)
	assert.Equal(t, "--\nAlex Chen\nPlatform Team", parts.Signature)
}

func TestExtractParts_MultiWordClosing(t *testing.T) {
	input := "Hi,\n\nDraft attached for review.\n\nWarm regards,\nSam"
	parts := ExtractParts(input)
	assert.Equal(t, "Draft attached for review.", parts.Body)
	assert.Equal(t, "Warm regards,\nSam", parts.Signature)
}

func TestExtractParts_LongClosingSentenceStaysInBody(t *testing.T) {
	input := "Thanks to everyone who helped us ship the release on time this quarter."
	parts := ExtractParts(input)
	assert.Equal(t, input, parts.Body)
	assert.Empty(t, parts.Signature)
}

func TestExtractParts_BareSignOffBecomesBody(t *testing.T) {
	// Body must always be populated, even when the whole input looks like
	// a signature.
	input := "Best,\nAlex"
	parts := ExtractParts(input)
	assert.Equal(t, input, parts.Body)
	assert.Empty(t, parts.Signature)
}

func TestExtractParts_PartitionPreservesContent(t *testing.T) {
	inputs := []string{
		"Subject: Quarterly Update\n\nHi team,\n\nBody text here.\n\nBest,\nAlex",
		"Hello,\n\nShort note.\n\nCheers,\nJo",
		"No structure whatsoever, just words.",
	}
	strip := func(s string) string {
		return strings.Join(strings.Fields(s), "")
	}
	for _, input := range inputs {
		parts := ExtractParts(input)
		reassembled := parts.Subject + " " + parts.Greeting + " " + parts.Body + " " + parts.Signature
		assert.Equal(t, strip(input), strip(reassembled), "input %q", input)
	}
}

func TestExtractParts_CRLFInput(t *testing.T) {
	input := "Subject: Test\r\n\r\nHi,\r\n\r\nLine one.\r\n\r\nThanks,\r\nSam"
	parts := ExtractParts(input)
	assert.Equal(t, "Test", parts.Subject)
	assert.Equal(t, "Hi,", parts.Greeting)
	assert.Equal(t, "Line one.", parts.Body)
	assert.Equal(t, "Thanks,\nSam", parts.Signature)
}
