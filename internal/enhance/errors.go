package enhance

import "fmt"

// ValidationError indicates a malformed request; the caller can fix the
// request and retry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// AuthRequiredError indicates the caller has exhausted the guest
// allowance and must sign in.
type AuthRequiredError struct{}

func (e *AuthRequiredError) Error() string {
	return "login_required"
}

// PaymentRequiredError indicates the caller has exhausted a free plan
// and must upgrade.
type PaymentRequiredError struct{}

func (e *PaymentRequiredError) Error() string {
	return "payment_required"
}

// QuotaExhaustedError indicates the gate refused the request without an
// auth or payment signal (e.g. a paid plan at its cap).
type QuotaExhaustedError struct{}

func (e *QuotaExhaustedError) Error() string {
	return "message quota exhausted"
}

// BackendError indicates the generation backend (or the quota gate's
// backing store) failed. The cause is kept for logs but never shown to
// callers.
type BackendError struct {
	Cause error
}

func (e *BackendError) Error() string {
	return "text generation is temporarily unavailable, please try again later"
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// EmptyResponseError indicates the backend returned no usable text. It
// maps to the same caller-facing class as BackendError.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "text generation is temporarily unavailable, please try again later"
}
