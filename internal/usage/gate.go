// Package usage implements the quota gate consulted before and after
// each enhancement. Guests are tracked in Redis under a daily key with a
// TTL; authenticated members are tracked in PostgreSQL with atomic
// decrement-if-positive semantics.
package usage

import (
	"context"

	"github.com/google/uuid"
)

// Identity names the caller of an enhancement request. A zero UserID
// means an unauthenticated guest identified by client IP.
type Identity struct {
	UserID   uuid.UUID
	ClientIP string
}

// IsGuest reports whether the identity is unauthenticated.
func (i Identity) IsGuest() bool {
	return i.UserID == uuid.Nil
}

// Status is the gate's answer for one identity.
type Status struct {
	CanMakeRequest    bool `json:"canMakeRequest"`
	RemainingMessages int  `json:"remainingMessages"`
	RequiresAuth      bool `json:"requiresAuth"`
	RequiresPayment   bool `json:"requiresPayment"`
}

// Gate is the quota service consumed by the enhancement orchestrator.
// Check must not consume quota; Record consumes exactly one unit and
// returns the post-decrement status. Record must be safe under
// concurrent calls for the same identity: two simultaneous requests must
// not both succeed when one unit remains.
type Gate interface {
	Check(ctx context.Context, id Identity) (Status, error)
	Record(ctx context.Context, id Identity) (Status, error)
}

// Service dispatches gate calls to the guest or member store based on
// the identity.
type Service struct {
	guests  *GuestStore
	members *MemberStore
}

// NewService creates a gate service over the two stores.
func NewService(guests *GuestStore, members *MemberStore) *Service {
	return &Service{guests: guests, members: members}
}

// Check returns the current status without consuming quota.
func (s *Service) Check(ctx context.Context, id Identity) (Status, error) {
	if id.IsGuest() {
		return s.guests.Check(ctx, id.ClientIP)
	}
	return s.members.Check(ctx, id.UserID)
}

// Record consumes one unit of quota and returns the updated status.
func (s *Service) Record(ctx context.Context, id Identity) (Status, error) {
	if id.IsGuest() {
		return s.guests.Record(ctx, id.ClientIP)
	}
	return s.members.Record(ctx, id.UserID)
}
