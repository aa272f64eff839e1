package requestmock

import (
	"context"
	"time"

	domain "approval-router/internal/domain/request"
	ruleDomain "approval-router/internal/domain/rule"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies request.Repository.
// Fill in the function fields you need in a test.
type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.ApprovalRequest) error
	SaveFn                    func(ctx context.Context, r *domain.ApprovalRequest) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.ApprovalRequest, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.ApprovalRequest, error)
	ListActionableFn          func(ctx context.Context) ([]domain.ApprovalRequest, error)
	ListCompletedFn           func(ctx context.Context, docType ruleDomain.DocumentType) ([]domain.ApprovalRequest, error)
	ListOverdueFn             func(ctx context.Context, now time.Time) ([]domain.ApprovalRequest, error)
	ListFn                    func(ctx context.Context) ([]domain.ApprovalRequest, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.ApprovalRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.ApprovalRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListActionable(ctx context.Context) ([]domain.ApprovalRequest, error) {
	if m.ListActionableFn != nil {
		return m.ListActionableFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListCompleted(ctx context.Context, docType ruleDomain.DocumentType) ([]domain.ApprovalRequest, error) {
	if m.ListCompletedFn != nil {
		return m.ListCompletedFn(ctx, docType)
	}
	return nil, nil
}

func (m *Repo) ListOverdue(ctx context.Context, now time.Time) ([]domain.ApprovalRequest, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, now)
	}
	return nil, nil
}

func (m *Repo) List(ctx context.Context) ([]domain.ApprovalRequest, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
