package rule

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"approval-router/internal/domain/rule"
	"approval-router/pkg/id"
)

type Usecase struct {
	repo rule.Repository
	log  *zap.Logger
}

func NewUsecase(r rule.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, log: log}
}

func (u *Usecase) Create(ctx context.Context, in RuleInput) (*RuleDTO, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("rule name is required")
	}
	if !rule.ValidDocumentType(in.DocumentType) {
		return nil, fmt.Errorf("invalid document type %q", in.DocumentType)
	}
	if len(in.Tiers) == 0 {
		return nil, fmt.Errorf("rule needs at least one tier")
	}

	r := &rule.ApprovalRule{
		RuleID:       id.NewID32(),
		Name:         in.Name,
		DocumentType: rule.DocumentType(in.DocumentType),
		IsActive:     in.IsActive,
		Tiers:        buildTiers(in.Tiers),
	}
	if err := r.ValidateTiers(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	u.log.Info("approval rule created",
		zap.String("rule_id", r.RuleID),
		zap.String("document_type", in.DocumentType),
		zap.Int("tiers", len(r.Tiers)))
	return toRuleDTO(r), nil
}

func (u *Usecase) Update(ctx context.Context, ruleID string, in RuleInput) (*RuleDTO, error) {
	r, err := u.repo.GetByRuleID(ctx, ruleID)
	if err != nil {
		return nil, rule.ErrNotFound
	}
	if in.Name != "" {
		r.Name = in.Name
	}
	if in.DocumentType != "" {
		if !rule.ValidDocumentType(in.DocumentType) {
			return nil, fmt.Errorf("invalid document type %q", in.DocumentType)
		}
		r.DocumentType = rule.DocumentType(in.DocumentType)
	}
	r.IsActive = in.IsActive
	if len(in.Tiers) > 0 {
		// tiers are replaced wholesale, never patched piecemeal
		r.Tiers = buildTiers(in.Tiers)
	}
	if err := r.ValidateTiers(); err != nil {
		return nil, err
	}
	if err := u.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	return toRuleDTO(r), nil
}

func (u *Usecase) SetActive(ctx context.Context, ruleID string, active bool) (*RuleDTO, error) {
	r, err := u.repo.GetByRuleID(ctx, ruleID)
	if err != nil {
		return nil, rule.ErrNotFound
	}
	if r.IsActive != active {
		r.IsActive = active
		if err := u.repo.Save(ctx, r); err != nil {
			return nil, err
		}
		u.log.Info("approval rule toggled",
			zap.String("rule_id", ruleID),
			zap.Bool("is_active", active))
	}
	return toRuleDTO(r), nil
}

func (u *Usecase) Get(ctx context.Context, ruleID string) (*RuleDTO, error) {
	r, err := u.repo.GetByRuleID(ctx, ruleID)
	if err != nil {
		return nil, rule.ErrNotFound
	}
	return toRuleDTO(r), nil
}

func (u *Usecase) List(ctx context.Context) ([]RuleDTO, error) {
	rules, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RuleDTO, 0, len(rules))
	for i := range rules {
		out = append(out, *toRuleDTO(&rules[i]))
	}
	return out, nil
}

func buildTiers(in []TierInput) []rule.ApprovalTier {
	tiers := make([]rule.ApprovalTier, 0, len(in))
	for i, t := range in {
		tier := rule.ApprovalTier{
			Position:           i + 1,
			Name:               t.Name,
			MinAmount:          t.MinAmount,
			MaxAmount:          t.MaxAmount,
			SLAHours:           t.SLAHours,
			EscalationHours:    t.EscalationHours,
			RequiresSequential: t.RequiresSequential,
			MinimumApprovers:   t.MinimumApprovers,
		}
		if tier.MinimumApprovers < 1 {
			tier.MinimumApprovers = 1
		}
		for j, a := range t.Approvers {
			tier.Approvers = append(tier.Approvers, rule.ApproverConfig{
				Position:     j + 1,
				UserID:       a.UserID,
				UserName:     a.UserName,
				Role:         a.Role,
				IsMandatory:  a.IsMandatory,
				CanDelegate:  a.CanDelegate,
				DelegateToID: a.DelegateToID,
			})
		}
		tiers = append(tiers, tier)
	}
	return tiers
}

func toRuleDTO(r *rule.ApprovalRule) *RuleDTO {
	dto := &RuleDTO{
		RuleID:       r.RuleID,
		Name:         r.Name,
		DocumentType: string(r.DocumentType),
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
	}
	for _, t := range r.SortedTiers() {
		td := TierDTO{
			Position:           t.Position,
			Name:               t.Name,
			MinAmount:          t.MinAmount,
			MaxAmount:          t.MaxAmount,
			SLAHours:           t.SLAHours,
			EscalationHours:    t.EscalationHours,
			RequiresSequential: t.RequiresSequential,
			MinimumApprovers:   t.MinimumApprovers,
		}
		for _, a := range t.Approvers {
			td.Approvers = append(td.Approvers, ApproverDTO{
				UserID:      a.UserID,
				UserName:    a.UserName,
				Role:        a.Role,
				IsMandatory: a.IsMandatory,
				CanDelegate: a.CanDelegate,
			})
		}
		dto.Tiers = append(dto.Tiers, td)
	}
	return dto
}
