package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	ruleDomain "approval-router/internal/domain/rule"
)

type RuleRepository struct{ db *gorm.DB }

func NewRuleRepository(db *gorm.DB) *RuleRepository { return &RuleRepository{db: db} }

func (r *RuleRepository) Create(ctx context.Context, rl *ruleDomain.ApprovalRule) error {
	// gorm cascades the tier and approver associations in one statement batch
	return r.db.WithContext(ctx).Create(rl).Error
}

func (r *RuleRepository) Save(ctx context.Context, rl *ruleDomain.ApprovalRule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// tiers are replaced wholesale: drop old rows, then save the full graph
		var oldTiers []ruleDomain.ApprovalTier
		if err := tx.Where("rule_id = ?", rl.ID).Find(&oldTiers).Error; err != nil {
			return err
		}
		for i := range oldTiers {
			if err := tx.Where("tier_id = ?", oldTiers[i].ID).Delete(&ruleDomain.ApproverConfig{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("rule_id = ?", rl.ID).Delete(&ruleDomain.ApprovalTier{}).Error; err != nil {
			return err
		}
		for i := range rl.Tiers {
			rl.Tiers[i].ID = 0
			rl.Tiers[i].RuleID = rl.ID
			for j := range rl.Tiers[i].Approvers {
				rl.Tiers[i].Approvers[j].ID = 0
				rl.Tiers[i].Approvers[j].TierID = 0
			}
		}
		return tx.Save(rl).Error
	})
}

func (r *RuleRepository) GetByRuleID(ctx context.Context, ruleID string) (*ruleDomain.ApprovalRule, error) {
	var out ruleDomain.ApprovalRule
	res := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Tiers.Approvers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("rule_id = ?", ruleID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ruleDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *RuleRepository) GetActiveByDocumentType(ctx context.Context, dt ruleDomain.DocumentType) (*ruleDomain.ApprovalRule, error) {
	var out ruleDomain.ApprovalRule
	res := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Tiers.Approvers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("document_type = ? AND is_active = ?", dt, true).
		Order("id ASC").
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ruleDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *RuleRepository) List(ctx context.Context) ([]ruleDomain.ApprovalRule, error) {
	var out []ruleDomain.ApprovalRule
	res := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Tiers.Approvers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
