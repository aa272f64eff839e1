package delegationmock

import (
	"context"
	"time"

	domain "approval-router/internal/domain/delegation"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies delegation.Repository.
// Fill in the function fields you need in a test.
type Repo struct {
	CreateFn            func(ctx context.Context, d *domain.Delegation) error
	SaveFn              func(ctx context.Context, d *domain.Delegation) error
	GetByDelegationIDFn func(ctx context.Context, delegationID string) (*domain.Delegation, error)
	FindActiveFn        func(ctx context.Context, fromUserID, toUserID string, now time.Time) (*domain.Delegation, error)
	ListActiveToFn      func(ctx context.Context, toUserID string, now time.Time) ([]domain.Delegation, error)
	ListFn              func(ctx context.Context) ([]domain.Delegation, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Delegation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, d *domain.Delegation) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByDelegationID(ctx context.Context, delegationID string) (*domain.Delegation, error) {
	if m.GetByDelegationIDFn != nil {
		return m.GetByDelegationIDFn(ctx, delegationID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) FindActive(ctx context.Context, fromUserID, toUserID string, now time.Time) (*domain.Delegation, error) {
	if m.FindActiveFn != nil {
		return m.FindActiveFn(ctx, fromUserID, toUserID, now)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListActiveTo(ctx context.Context, toUserID string, now time.Time) ([]domain.Delegation, error) {
	if m.ListActiveToFn != nil {
		return m.ListActiveToFn(ctx, toUserID, now)
	}
	return nil, nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Delegation, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
