package target

import (
	"strings"
	"testing"

	"github.com/Jmaradona/makeitshorter-sub000/internal/textops"
	"github.com/stretchr/testify/assert"
)

func wordsOf(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestCompute_SameModeIsExact(t *testing.T) {
	// 42 words must yield exactly 42, not 40 or 45.
	content := wordsOf(42)
	assert.Equal(t, 42, Compute(content, ModeSame, textops.TypeText))
}

func TestCompute_SameModeUsesBodyOnly(t *testing.T) {
	content := "Subject: Update\n\nHi team,\n\n" + wordsOf(30) + "\n\nBest,\nAlex"
	got := Compute(content, ModeSame, textops.TypeEmail)
	assert.Equal(t, 30, got)
}

func TestCompute_ShorterSmallInputUsesProportionalPath(t *testing.T) {
	// 8 words, factor 0.75 -> 6, small floor 5, rounded to 5. The 25-word
	// floor must not apply.
	got := Compute(wordsOf(8), ModeShorter, textops.TypeText)
	assert.Equal(t, 5, got)
}

func TestCompute_ShorterLargeInputAppliesFloor(t *testing.T) {
	// 28 words -> 21 scaled, floored to 25, already a multiple of 5.
	got := Compute(wordsOf(28), ModeShorter, textops.TypeText)
	assert.Equal(t, 25, got)
}

func TestCompute_ShorterScalesAboveFloor(t *testing.T) {
	// 100 words -> 75.
	got := Compute(wordsOf(100), ModeShorter, textops.TypeText)
	assert.Equal(t, 75, got)
}

func TestCompute_LongerRoundsToFive(t *testing.T) {
	// 42 words -> 63 scaled -> 65 rounded.
	got := Compute(wordsOf(42), ModeLonger, textops.TypeText)
	assert.Equal(t, 65, got)
}

func TestCompute_LongerSmallInput(t *testing.T) {
	// 6 words -> 9 scaled, small floor 12 -> 12 -> rounded to 10.
	got := Compute(wordsOf(6), ModeLonger, textops.TypeText)
	assert.Equal(t, 10, got)
}

func TestCompute_LongerLargeInputAppliesFloor(t *testing.T) {
	// 21 words -> 32 scaled, floored to 40.
	got := Compute(wordsOf(21), ModeLonger, textops.TypeText)
	assert.Equal(t, 40, got)
}

func TestCompute_StructuredTypeIgnoresSignature(t *testing.T) {
	content := "Hi,\n\n" + wordsOf(40) + "\n\nRegards,\nSam"
	plain := Compute(content, ModeShorter, textops.TypeText)
	structured := Compute(content, ModeShorter, textops.TypeEmail)
	// The plain count includes greeting and signature words, so its
	// target is at least as large.
	assert.GreaterOrEqual(t, plain, structured)
	assert.Equal(t, 30, structured) // 40 * 0.75
}

func TestMode_Valid(t *testing.T) {
	assert.True(t, ModeShorter.Valid())
	assert.True(t, ModeSame.Valid())
	assert.True(t, ModeLonger.Valid())
	assert.False(t, Mode("verbose").Valid())
}
