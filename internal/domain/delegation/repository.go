package delegation

import (
	"context"
	"time"
)

type Repository interface {
	// Create a new delegation grant
	Create(ctx context.Context, d *Delegation) error

	// Save an existing grant (revocation happens via Save)
	Save(ctx context.Context, d *Delegation) error

	// Get by public delegation_id
	GetByDelegationID(ctx context.Context, delegationID string) (*Delegation, error)

	// FindActive returns the first grant from→to valid at now, or ErrNotFound
	FindActive(ctx context.Context, fromUserID, toUserID string, now time.Time) (*Delegation, error)

	// ListActiveTo returns every grant naming toUserID as delegate valid at now
	ListActiveTo(ctx context.Context, toUserID string, now time.Time) ([]Delegation, error)

	// All grants, active or not
	List(ctx context.Context) ([]Delegation, error)
}
