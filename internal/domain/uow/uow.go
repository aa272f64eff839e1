package uow

import (
	"context"

	"approval-router/internal/domain/delegation"
	"approval-router/internal/domain/request"
	"approval-router/internal/domain/rule"
)

type Repos struct {
	Rules       rule.Repository
	Requests    request.Repository
	Delegations delegation.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the request row first, then pass it in
	WithinRequestTx(ctx context.Context, requestID string, fn func(r Repos, req *request.ApprovalRequest) error) error
}
