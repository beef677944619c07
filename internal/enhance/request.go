// Package enhance implements the word-count-targeting enhancement
// pipeline: prompt construction, backend invocation, structural parsing
// of the response, tolerance-based acceptance and the bounded correction
// retry.
package enhance

import (
	"strings"

	"github.com/Jmaradona/makeitshorter-sub000/internal/textops"
	"github.com/go-playground/validator/v10"
)

// DefaultTone is used when the caller leaves the tone empty.
const DefaultTone = "professional"

// Request is the input to the pipeline. TargetWords always refers to the
// body-only word count.
type Request struct {
	Content               string            `json:"content" validate:"required"`
	Tone                  string            `json:"tone"`
	TargetWords           int               `json:"targetWords" validate:"required,min=1"`
	InputType             textops.InputType `json:"inputType" validate:"omitempty,oneof=email message text subject"`
	EnforceExactWordCount bool              `json:"enforceExactWordCount"`
}

// Result is the output of the pipeline. Warning is set iff the final
// body word count fell outside tolerance after all attempts; a warning
// never accompanies an error.
type Result struct {
	EnhancedContent string `json:"enhancedContent"`
	WordCount       int    `json:"wordCount"`
	Warning         string `json:"warning,omitempty"`
	// Attempts counts backend invocations made for this result (1 or 2).
	Attempts int `json:"-"`
}

var validate = validator.New()

// Normalize fills defaults for optional fields.
func (r *Request) Normalize() {
	if r.InputType == "" {
		r.InputType = textops.TypeEmail
	}
	if strings.TrimSpace(r.Tone) == "" {
		r.Tone = DefaultTone
	}
}

// Validate checks the request shape. Size limits are enforced by the
// orchestrator, which owns the token ceiling.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return &ValidationError{Field: "content", Message: "content must not be empty"}
	}
	if err := validate.Struct(r); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &ValidationError{
				Field:   strings.ToLower(errs[0].Field()),
				Message: "failed " + errs[0].Tag() + " validation",
			}
		}
		return &ValidationError{Field: "request", Message: err.Error()}
	}
	return nil
}
