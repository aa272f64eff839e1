package delegation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"approval-router/internal/domain/delegation"
	"approval-router/internal/domain/rule"
	"approval-router/pkg/id"
)

type Usecase struct {
	repo delegation.Repository
	log  *zap.Logger
}

func NewUsecase(r delegation.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, log: log}
}

func (u *Usecase) Grant(ctx context.Context, in GrantInput) (*DelegationDTO, error) {
	if in.FromUserID == "" || in.ToUserID == "" {
		return nil, fmt.Errorf("from_user_id and to_user_id are required")
	}
	if in.FromUserID == in.ToUserID {
		return nil, fmt.Errorf("cannot delegate to oneself")
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, fmt.Errorf("end_date must be after start_date")
	}
	for _, dt := range in.DocumentTypes {
		if !rule.ValidDocumentType(dt) {
			return nil, fmt.Errorf("invalid document type %q", dt)
		}
	}

	d := &delegation.Delegation{
		DelegationID:  id.NewID32(),
		FromUserID:    in.FromUserID,
		FromUserName:  in.FromUserName,
		ToUserID:      in.ToUserID,
		ToUserName:    in.ToUserName,
		DocumentTypes: strings.Join(in.DocumentTypes, ","),
		MaxAmount:     in.MaxAmount,
		StartDate:     in.StartDate.UTC(),
		EndDate:       in.EndDate.UTC(),
		IsActive:      true,
		Reason:        in.Reason,
	}
	if err := u.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	u.log.Info("delegation granted",
		zap.String("delegation_id", d.DelegationID),
		zap.String("from", d.FromUserID),
		zap.String("to", d.ToUserID))
	return toDTO(d), nil
}

func (u *Usecase) Revoke(ctx context.Context, delegationID string) (*DelegationDTO, error) {
	d, err := u.repo.GetByDelegationID(ctx, delegationID)
	if err != nil {
		return nil, delegation.ErrNotFound
	}
	d.Revoke(time.Now().UTC())
	if err := u.repo.Save(ctx, d); err != nil {
		return nil, err
	}

	u.log.Info("delegation revoked", zap.String("delegation_id", delegationID))
	return toDTO(d), nil
}

func (u *Usecase) List(ctx context.Context) ([]DelegationDTO, error) {
	ds, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DelegationDTO, 0, len(ds))
	for i := range ds {
		out = append(out, *toDTO(&ds[i]))
	}
	return out, nil
}

func toDTO(d *delegation.Delegation) *DelegationDTO {
	var docTypes []string
	if s := strings.TrimSpace(d.DocumentTypes); s != "" {
		docTypes = strings.Split(s, ",")
	}
	return &DelegationDTO{
		DelegationID:  d.DelegationID,
		FromUserID:    d.FromUserID,
		FromUserName:  d.FromUserName,
		ToUserID:      d.ToUserID,
		ToUserName:    d.ToUserName,
		DocumentTypes: docTypes,
		MaxAmount:     d.MaxAmount,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		IsActive:      d.IsActive,
		Reason:        d.Reason,
		RevokedAt:     d.RevokedAt,
	}
}
