package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	delegationDomain "approval-router/internal/domain/delegation"
)

type DelegationRepository struct{ db *gorm.DB }

func NewDelegationRepository(db *gorm.DB) *DelegationRepository {
	return &DelegationRepository{db: db}
}

func (r *DelegationRepository) Create(ctx context.Context, d *delegationDomain.Delegation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DelegationRepository) Save(ctx context.Context, d *delegationDomain.Delegation) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DelegationRepository) GetByDelegationID(ctx context.Context, delegationID string) (*delegationDomain.Delegation, error) {
	var out delegationDomain.Delegation
	res := r.db.WithContext(ctx).
		Where("delegation_id = ?", delegationID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, delegationDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *DelegationRepository) FindActive(ctx context.Context, fromUserID, toUserID string, now time.Time) (*delegationDomain.Delegation, error) {
	var out delegationDomain.Delegation
	res := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ? AND is_active = ? AND start_date <= ? AND end_date >= ?",
			fromUserID, toUserID, true, now, now).
		Order("id ASC").
		First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, delegationDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *DelegationRepository) ListActiveTo(ctx context.Context, toUserID string, now time.Time) ([]delegationDomain.Delegation, error) {
	var out []delegationDomain.Delegation
	res := r.db.WithContext(ctx).
		Where("to_user_id = ? AND is_active = ? AND start_date <= ? AND end_date >= ?",
			toUserID, true, now, now).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *DelegationRepository) List(ctx context.Context) ([]delegationDomain.Delegation, error) {
	var out []delegationDomain.Delegation
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}
