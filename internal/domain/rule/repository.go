package rule

import "context"

type Repository interface {
	// Create a new rule with its tiers and approvers in one write
	Create(ctx context.Context, r *ApprovalRule) error

	// Save an existing rule (tiers replaced wholesale by the caller)
	Save(ctx context.Context, r *ApprovalRule) error

	// Get by public rule_id, tiers and approvers preloaded
	GetByRuleID(ctx context.Context, ruleID string) (*ApprovalRule, error)

	// First active rule for a document type, tiers and approvers preloaded
	GetActiveByDocumentType(ctx context.Context, dt DocumentType) (*ApprovalRule, error)

	// All rules, active or not
	List(ctx context.Context) ([]ApprovalRule, error)
}
