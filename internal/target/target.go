// Package target derives the numeric word-count target for an
// enhancement from the input's body word count and a named length mode.
package target

import (
	"math"

	"github.com/Jmaradona/makeitshorter-sub000/internal/textops"
)

// Mode is a named length scaling policy.
type Mode string

// Supported length modes.
const (
	ModeShorter Mode = "shorter"
	ModeSame    Mode = "same"
	ModeLonger  Mode = "longer"
)

// Scaling factors per mode. These values are product-tuned; changing
// them changes user-visible behavior, so treat them as fixed.
const (
	shorterFactor = 0.75
	longerFactor  = 1.5
)

// Minimum targets. The large floors only apply above smallInputWords;
// below it a small input is scaled proportionally with a modest floor so
// a two-sentence note is not blown up to a page.
const (
	smallInputWords = 20

	shorterFloor      = 25
	longerFloor       = 40
	shorterSmallFloor = 5
	longerSmallFloor  = 12
)

// Valid reports whether m is a known length mode.
func (m Mode) Valid() bool {
	return m == ModeShorter || m == ModeSame || m == ModeLonger
}

// Compute returns the target body word count for content under the given
// mode. For structured input types the count is taken from the parsed
// body only, so embedded greetings and signatures never inflate the
// target. ModeSame returns the current count exactly; the other modes
// scale, floor, and round to the nearest multiple of 5.
func Compute(content string, mode Mode, inputType textops.InputType) int {
	words := bodyWords(content, inputType)

	if mode == ModeSame {
		return words
	}

	var factor float64
	var floor, smallFloor int
	switch mode {
	case ModeShorter:
		factor, floor, smallFloor = shorterFactor, shorterFloor, shorterSmallFloor
	case ModeLonger:
		factor, floor, smallFloor = longerFactor, longerFloor, longerSmallFloor
	default:
		return words
	}

	scaled := int(math.Round(float64(words) * factor))
	if words > smallInputWords {
		scaled = max(scaled, floor)
	} else {
		scaled = max(scaled, smallFloor)
	}

	return roundToFive(scaled)
}

// bodyWords counts the words that the target applies to: the parsed body
// for structured types, the whole content otherwise.
func bodyWords(content string, inputType textops.InputType) int {
	if inputType.Structured() {
		return textops.CountWords(textops.ExtractParts(content).Body)
	}
	return textops.CountWords(content)
}

// roundToFive rounds n to the nearest multiple of 5, never below 5.
func roundToFive(n int) int {
	rounded := int(math.Round(float64(n)/5.0)) * 5
	if rounded < 5 {
		return 5
	}
	return rounded
}
