package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	requestDomain "approval-router/internal/domain/request"
	"approval-router/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinRequestTx(ctx context.Context, requestID string, fn func(r uow.Repos, req *requestDomain.ApprovalRequest) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the request row up-front so concurrent approver actions
		// serialize on the same request
		req, err := r.Requests.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return requestDomain.ErrNotFound
			}
			return err
		}
		return fn(r, req)
	})
}

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Rules:       &RuleRepository{db: tx},
		Requests:    &RequestRepository{db: tx},
		Delegations: &DelegationRepository{db: tx},
	}
}
