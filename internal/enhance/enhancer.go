package enhance

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/Jmaradona/makeitshorter-sub000/internal/llm"
	"github.com/Jmaradona/makeitshorter-sub000/internal/textops"
	"github.com/Jmaradona/makeitshorter-sub000/internal/usage"
)

// Config holds the orchestrator's tuning constants. The tolerance and
// budget values are product-tuned; keep them stable.
type Config struct {
	// MaxInputTokens rejects oversized inputs before any backend call.
	MaxInputTokens int
	// ToleranceFloor is the absolute word tolerance floor for
	// non-strict requests.
	ToleranceFloor int
	// TolerancePct is the relative tolerance for non-strict requests.
	TolerancePct float64
	// Output budget: min(Ceiling, max(Floor, target * TokensPerWord * Expansion)).
	OutputTokenFloor   int32
	OutputTokenCeiling int32
	OutputExpansion    float64
	// Tier runs the first attempt; CorrectionTier runs the strict retry.
	Tier           llm.ModelTier
	CorrectionTier llm.ModelTier
	// GenerateTimeout bounds each backend call so a hung backend fails
	// the request instead of holding the connection.
	GenerateTimeout time.Duration
}

// DefaultConfig returns the production constants.
func DefaultConfig() Config {
	return Config{
		MaxInputTokens:     8000,
		ToleranceFloor:     5,
		TolerancePct:       0.05,
		OutputTokenFloor:   256,
		OutputTokenCeiling: 4096,
		OutputExpansion:    2.0,
		Tier:               llm.TierStandard,
		CorrectionTier:     llm.TierAdvanced,
		GenerateTimeout:    45 * time.Second,
	}
}

// Enhancer runs the enhancement state machine: Validating -> QuotaCheck
// -> Generating -> Parsing -> Evaluating -> Accepted / Retrying /
// AcceptedWithWarning / Failed. It is stateless across requests; any
// number of Enhance calls may run concurrently.
type Enhancer struct {
	client llm.Client
	gate   usage.Gate
	cfg    Config
}

// New creates an Enhancer over the given backend client and usage gate.
func New(client llm.Client, gate usage.Gate, cfg Config) *Enhancer {
	return &Enhancer{client: client, gate: gate, cfg: cfg}
}

// Enhance runs one request through the pipeline. A word-count miss is
// never an error: after the bounded retry the result is returned with a
// warning. Errors are always one of the taxonomy types in errors.go.
func (e *Enhancer) Enhance(ctx context.Context, id usage.Identity, req *Request) (*Result, error) {
	// Validating
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if est := textops.EstimateTokens(req.Content); est > e.cfg.MaxInputTokens {
		return nil, &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("input too large: ~%d tokens exceeds the %d token limit", est, e.cfg.MaxInputTokens),
		}
	}

	// QuotaCheck
	status, err := e.gate.Check(ctx, id)
	if err != nil {
		return nil, &BackendError{Cause: err}
	}
	if !status.CanMakeRequest {
		switch {
		case status.RequiresAuth:
			return nil, &AuthRequiredError{}
		case status.RequiresPayment:
			return nil, &PaymentRequiredError{}
		default:
			return nil, &QuotaExhaustedError{}
		}
	}

	parsed := textops.ParsedMessage{Body: req.Content}
	if req.InputType.Structured() {
		parsed = textops.ExtractParts(req.Content)
	}

	// Generating (first attempt)
	prompt := buildPrompt(req, parsed)
	result, err := e.generateAndEvaluate(ctx, req, prompt, e.cfg.Tier, 1)
	if err != nil {
		return nil, err
	}

	// Retrying: strict misses get exactly one correction pass. The
	// backend is non-deterministic and a correction prompt is not
	// guaranteed to converge, so the contract is bounded at two attempts
	// total.
	if result.Warning != "" && req.EnforceExactWordCount {
		correction := buildCorrectionPrompt(req, result.EnhancedContent, result.WordCount)
		retried, err := e.generateAndEvaluate(ctx, req, correction, e.cfg.CorrectionTier, 2)
		if err != nil {
			return nil, err
		}
		result = retried
	}

	// QuotaCheck (post): one unit consumed for any accepted outcome.
	// Failures here must not void a delivered result.
	if _, err := e.gate.Record(ctx, id); err != nil {
		log.Printf("[enhance] failed to record usage: %v", err)
	}

	return result, nil
}

// generateAndEvaluate is one Generating -> Parsing -> Evaluating pass.
// An out-of-tolerance count is reported through Result.Warning, never as
// an error.
func (e *Enhancer) generateAndEvaluate(ctx context.Context, req *Request, prompt promptPair, tier llm.ModelTier, attempt int) (*Result, error) {
	if e.cfg.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.GenerateTimeout)
		defer cancel()
	}

	text, err := e.client.Generate(ctx, llm.GenerateRequest{
		System:          prompt.System,
		User:            prompt.User,
		MaxOutputTokens: e.outputBudget(req.TargetWords),
		Tier:            tier,
	})
	if err != nil {
		log.Printf("[enhance] backend call failed (attempt %d): %v", attempt, err)
		return nil, &BackendError{Cause: err}
	}

	text = llm.CleanResponse(text)
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyResponseError{}
	}

	// Parsing: isolate the body of the response so boilerplate never
	// counts against the target.
	body := text
	if req.InputType.Structured() {
		body = textops.ExtractParts(text).Body
	}

	// Evaluating
	actual := textops.CountWords(body)
	tol := e.tolerance(req)
	result := &Result{
		EnhancedContent: text,
		WordCount:       actual,
		Attempts:        attempt,
	}
	if delta := abs(actual - req.TargetWords); delta > tol {
		result.Warning = fmt.Sprintf(
			"requested %d words but the rewritten body has %d (tolerance ±%d)",
			req.TargetWords, actual, tol,
		)
	}
	return result, nil
}

// tolerance returns the acceptance window: zero for strict requests,
// otherwise a 5% relative tolerance with an absolute floor.
func (e *Enhancer) tolerance(req *Request) int {
	if req.EnforceExactWordCount {
		return 0
	}
	rel := int(math.Round(float64(req.TargetWords) * e.cfg.TolerancePct))
	if rel < e.cfg.ToleranceFloor {
		return e.cfg.ToleranceFloor
	}
	return rel
}

// outputBudget bounds the response length so a long target is not
// truncated mid-message.
func (e *Enhancer) outputBudget(targetWords int) int32 {
	budget := int32(math.Ceil(float64(targetWords) * textops.TokensPerWord * e.cfg.OutputExpansion))
	if budget < e.cfg.OutputTokenFloor {
		budget = e.cfg.OutputTokenFloor
	}
	if budget > e.cfg.OutputTokenCeiling {
		budget = e.cfg.OutputTokenCeiling
	}
	return budget
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
