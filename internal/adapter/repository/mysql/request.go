package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	requestDomain "approval-router/internal/domain/request"
	ruleDomain "approval-router/internal/domain/rule"
)

type RequestRepository struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) *RequestRepository { return &RequestRepository{db: db} }

var actionableStatuses = []requestDomain.Status{
	requestDomain.StatusPending,
	requestDomain.StatusEscalated,
}

func (r *RequestRepository) Create(ctx context.Context, req *requestDomain.ApprovalRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) Save(ctx context.Context, req *requestDomain.ApprovalRequest) error {
	// FullSaveAssociations so mutated chain items and appended comments are
	// written alongside the request row
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(req).Error
}

func (r *RequestRepository) GetByRequestID(ctx context.Context, requestID string) (*requestDomain.ApprovalRequest, error) {
	var out requestDomain.ApprovalRequest
	res := r.preloaded(ctx).
		Where("request_id = ?", requestID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, requestDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *RequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*requestDomain.ApprovalRequest, error) {
	var out requestDomain.ApprovalRequest
	res := r.preloaded(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", requestID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, requestDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *RequestRepository) ListActionable(ctx context.Context) ([]requestDomain.ApprovalRequest, error) {
	var out []requestDomain.ApprovalRequest
	res := r.preloaded(ctx).
		Where("status IN ?", actionableStatuses).
		Order("requested_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *RequestRepository) ListCompleted(ctx context.Context, docType ruleDomain.DocumentType) ([]requestDomain.ApprovalRequest, error) {
	q := r.preloaded(ctx).
		Where("status IN ?", []requestDomain.Status{
			requestDomain.StatusApproved,
			requestDomain.StatusRejected,
			requestDomain.StatusAutoApproved,
		})
	if docType != "" {
		q = q.Where("document_type = ?", docType)
	}
	var out []requestDomain.ApprovalRequest
	res := q.Order("completed_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *RequestRepository) ListOverdue(ctx context.Context, now time.Time) ([]requestDomain.ApprovalRequest, error) {
	var out []requestDomain.ApprovalRequest
	res := r.preloaded(ctx).
		Where("status IN ? AND due_at < ?", actionableStatuses, now).
		Order("due_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *RequestRepository) List(ctx context.Context) ([]requestDomain.ApprovalRequest, error) {
	var out []requestDomain.ApprovalRequest
	res := r.preloaded(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *RequestRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Chain", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}
