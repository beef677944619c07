// Package textops provides the word counting and structural parsing
// primitives shared by the enhancement pipeline. CountWords is the single
// definition of "word" in the system; the target calculator, the prompt
// builder, and the acceptance check all go through it.
package textops

import (
	"math"
	"strings"
)

// TokensPerWord is the fixed ratio used to estimate model tokens from a
// word count, for both input-size validation and output budgeting.
const TokensPerWord = 1.5

// CountWords counts whitespace-delimited tokens in text. Runs of any
// whitespace (including line breaks) separate tokens; empty tokens are
// dropped. Hyphenated compounds, contractions, acronyms and numbers each
// count as one word because they contain no whitespace.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// EstimateTokens estimates the model token cost of text from its word
// count.
func EstimateTokens(text string) int {
	return int(math.Ceil(float64(CountWords(text)) * TokensPerWord))
}

// InputType classifies the kind of text being enhanced. Structured types
// get subject/greeting/signature handling; plain types are treated as a
// single body.
type InputType string

// Supported input types.
const (
	TypeEmail   InputType = "email"
	TypeMessage InputType = "message"
	TypeText    InputType = "text"
	TypeSubject InputType = "subject"
)

// Structured reports whether structural parsing applies to this input
// type.
func (t InputType) Structured() bool {
	return t == TypeEmail || t == TypeMessage
}
