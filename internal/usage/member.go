package usage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultFreeAllowance is the monthly message allowance granted when a
// member's quota row is first created on the free plan.
const DefaultFreeAllowance = 50

// Plan names stored in the quota table.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// MemberStore tracks authenticated member usage in PostgreSQL.
type MemberStore struct {
	pool          *pgxpool.Pool
	freeAllowance int
}

// ConnectMembers establishes a connection pool and verifies it.
func ConnectMembers(ctx context.Context, databaseURL string, freeAllowance int) (*MemberStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if freeAllowance <= 0 {
		freeAllowance = DefaultFreeAllowance
	}
	return &MemberStore{pool: pool, freeAllowance: freeAllowance}, nil
}

// Close releases the connection pool.
func (s *MemberStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping verifies database connectivity.
func (s *MemberStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Check returns the member's status without consuming quota. A member
// seen for the first time gets a free-plan row with the default
// allowance.
func (s *MemberStore) Check(ctx context.Context, userID uuid.UUID) (Status, error) {
	var remaining int
	var plan string
	err := s.pool.QueryRow(ctx,
		`SELECT remaining_messages, plan FROM usage_quotas WHERE user_id = $1`,
		userID,
	).Scan(&remaining, &plan)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.provision(ctx, userID)
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to read member quota: %w", err)
	}
	return memberStatus(remaining, plan), nil
}

// Record atomically consumes one unit. The WHERE clause makes the
// decrement conditional, so two concurrent calls cannot both succeed on
// a single remaining unit.
func (s *MemberStore) Record(ctx context.Context, userID uuid.UUID) (Status, error) {
	var remaining int
	var plan string
	err := s.pool.QueryRow(ctx,
		`UPDATE usage_quotas
		 SET remaining_messages = remaining_messages - 1, updated_at = NOW()
		 WHERE user_id = $1 AND remaining_messages > 0
		 RETURNING remaining_messages, plan`,
		userID,
	).Scan(&remaining, &plan)
	if errors.Is(err, pgx.ErrNoRows) {
		// Nothing left to decrement; report the exhausted state.
		return s.Check(ctx, userID)
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to record member usage: %w", err)
	}
	return memberStatus(remaining, plan), nil
}

// provision inserts the initial free-plan row. Safe under concurrent
// first requests from the same user.
func (s *MemberStore) provision(ctx context.Context, userID uuid.UUID) (Status, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO usage_quotas (user_id, plan, remaining_messages)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, PlanFree, s.freeAllowance,
	)
	if err != nil {
		return Status{}, fmt.Errorf("failed to provision member quota: %w", err)
	}
	return memberStatus(s.freeAllowance, PlanFree), nil
}

// memberStatus derives a Status from a quota row. An exhausted free-plan
// member is directed to upgrade; an exhausted paid member just waits for
// the next cycle.
func memberStatus(remaining int, plan string) Status {
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		CanMakeRequest:    remaining > 0,
		RemainingMessages: remaining,
		RequiresPayment:   remaining <= 0 && plan == PlanFree,
	}
}
