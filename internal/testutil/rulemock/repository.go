package rulemock

import (
	"context"

	domain "approval-router/internal/domain/rule"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies rule.Repository.
// Fill in the function fields you need in a test.
type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.ApprovalRule) error
	SaveFn                    func(ctx context.Context, r *domain.ApprovalRule) error
	GetByRuleIDFn             func(ctx context.Context, ruleID string) (*domain.ApprovalRule, error)
	GetActiveByDocumentTypeFn func(ctx context.Context, dt domain.DocumentType) (*domain.ApprovalRule, error)
	ListFn                    func(ctx context.Context) ([]domain.ApprovalRule, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.ApprovalRule) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.ApprovalRule) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRuleID(ctx context.Context, ruleID string) (*domain.ApprovalRule, error) {
	if m.GetByRuleIDFn != nil {
		return m.GetByRuleIDFn(ctx, ruleID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetActiveByDocumentType(ctx context.Context, dt domain.DocumentType) (*domain.ApprovalRule, error) {
	if m.GetActiveByDocumentTypeFn != nil {
		return m.GetActiveByDocumentTypeFn(ctx, dt)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.ApprovalRule, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
