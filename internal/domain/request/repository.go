package request

import (
	"context"
	"time"

	"approval-router/internal/domain/rule"
)

type Repository interface {
	// Create a new request with its chain and comments in one write
	Create(ctx context.Context, r *ApprovalRequest) error

	// Save persists a mutated request including chain items and comments
	Save(ctx context.Context, r *ApprovalRequest) error

	// Get by public request_id, chain and comments preloaded
	GetByRequestID(ctx context.Context, requestID string) (*ApprovalRequest, error)

	// Like GetByRequestID but locks the request row for update; only valid
	// inside a transaction
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*ApprovalRequest, error)

	// All requests still awaiting action (pending or escalated)
	ListActionable(ctx context.Context) ([]ApprovalRequest, error)

	// Terminal requests (approved, rejected, auto-approved), newest
	// completion first; docType "" means all document types
	ListCompleted(ctx context.Context, docType rule.DocumentType) ([]ApprovalRequest, error)

	// Open requests whose due_at has passed
	ListOverdue(ctx context.Context, now time.Time) ([]ApprovalRequest, error)

	// Every request, for statistics
	List(ctx context.Context) ([]ApprovalRequest, error)
}
