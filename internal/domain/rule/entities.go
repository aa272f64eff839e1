package rule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("approval rule not found")
	ErrTierOverlap      = errors.New("tier amount ranges overlap")
	ErrNoTierForAmount  = errors.New("no approval tier found for amount")
	ErrNoRuleConfigured = errors.New("no approval rule configured for document type")
)

type DocumentType string

const (
	DocRequisition   DocumentType = "requisition"
	DocPurchaseOrder DocumentType = "purchase_order"
	DocRFQ           DocumentType = "rfq"
	DocContract      DocumentType = "contract"
	DocInvoice       DocumentType = "invoice"
)

// DocumentTypes lists every routable document type, in display order.
var DocumentTypes = []DocumentType{
	DocRequisition, DocPurchaseOrder, DocRFQ, DocContract, DocInvoice,
}

func ValidDocumentType(s string) bool {
	for _, dt := range DocumentTypes {
		if string(dt) == s {
			return true
		}
	}
	return false
}

// ApprovalRule is a named routing policy for one document type. At most one
// active rule per document type is consulted at submission time.
type ApprovalRule struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	RuleID       string         `gorm:"column:rule_id;type:char(32);not null;uniqueIndex:ux_rules_rule_id"`
	Name         string         `gorm:"column:name;size:255;not null"`
	DocumentType DocumentType   `gorm:"column:document_type;size:32;not null;index"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true;index"`
	Tiers        []ApprovalTier `gorm:"foreignKey:RuleID;references:ID"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (ApprovalRule) TableName() string { return "approval_rules" }

// ApprovalTier is one amount-range step of a rule. Position is the 1-based
// order of the tier within its rule and doubles as the chain level for items
// materialized from it.
type ApprovalTier struct {
	ID                 uint64           `gorm:"column:id;primaryKey;autoIncrement"`
	RuleID             uint64           `gorm:"column:rule_id;not null;index"`
	Position           int              `gorm:"column:position;not null"`
	Name               string           `gorm:"column:name;size:255;not null"`
	MinAmount          float64          `gorm:"column:min_amount;type:decimal(18,2);not null"`
	MaxAmount          float64          `gorm:"column:max_amount;type:decimal(18,2);not null"`
	SLAHours           int              `gorm:"column:sla_hours;not null"`
	EscalationHours    int              `gorm:"column:escalation_hours;not null"`
	RequiresSequential bool             `gorm:"column:requires_sequential;not null;default:false"`
	MinimumApprovers   int              `gorm:"column:minimum_approvers;not null;default:1"`
	Approvers          []ApproverConfig `gorm:"foreignKey:TierID;references:ID"`
}

func (ApprovalTier) TableName() string { return "approval_tiers" }

// Contains reports whether amount falls inside the tier's inclusive range.
func (t *ApprovalTier) Contains(amount float64) bool {
	return amount >= t.MinAmount && amount <= t.MaxAmount
}

// ApproverConfig identifies one principal slot within a tier.
type ApproverConfig struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	TierID       uint64 `gorm:"column:tier_id;not null;index"`
	Position     int    `gorm:"column:position;not null"`
	UserID       string `gorm:"column:user_id;type:char(32);not null"`
	UserName     string `gorm:"column:user_name;size:255;not null"`
	Role         string `gorm:"column:role;size:128"`
	IsMandatory  bool   `gorm:"column:is_mandatory;not null;default:true"`
	CanDelegate  bool   `gorm:"column:can_delegate;not null;default:false"`
	DelegateToID string `gorm:"column:delegate_to_id;type:char(32)"`
}

func (ApproverConfig) TableName() string { return "tier_approvers" }

// SortedTiers returns the rule's tiers ordered by MinAmount ascending.
func (r *ApprovalRule) SortedTiers() []ApprovalTier {
	out := make([]ApprovalTier, len(r.Tiers))
	copy(out, r.Tiers)
	sort.Slice(out, func(i, j int) bool { return out[i].MinAmount < out[j].MinAmount })
	return out
}

// ValidateTiers enforces the non-overlap invariant: sorted by MinAmount,
// each tier's MaxAmount must not exceed the next tier's MinAmount.
func (r *ApprovalRule) ValidateTiers() error {
	tiers := r.SortedTiers()
	for i := range tiers {
		if tiers[i].MaxAmount < tiers[i].MinAmount {
			return fmt.Errorf("%w: tier %q has max_amount below min_amount", ErrTierOverlap, tiers[i].Name)
		}
		if i+1 < len(tiers) && tiers[i].MaxAmount > tiers[i+1].MinAmount {
			return fmt.Errorf("%w: %q overlaps %q", ErrTierOverlap, tiers[i].Name, tiers[i+1].Name)
		}
	}
	return nil
}

// ApplicableTier scans for the tier whose range contains amount. A nil return
// means the amount fell into a gap between tiers, which callers must surface
// as a configuration error.
func (r *ApprovalRule) ApplicableTier(amount float64) *ApprovalTier {
	for i := range r.Tiers {
		if r.Tiers[i].Contains(amount) {
			return &r.Tiers[i]
		}
	}
	return nil
}

// TierByID finds the tier with the given numeric id within this rule.
func (r *ApprovalRule) TierByID(tierID uint64) *ApprovalTier {
	for i := range r.Tiers {
		if r.Tiers[i].ID == tierID {
			return &r.Tiers[i]
		}
	}
	return nil
}

// NextTier returns the tier following the given one in MinAmount order, or
// nil when the given tier is already the highest.
func (r *ApprovalRule) NextTier(tierID uint64) *ApprovalTier {
	tiers := r.SortedTiers()
	for i := range tiers {
		if tiers[i].ID == tierID && i+1 < len(tiers) {
			next := tiers[i+1]
			return &next
		}
	}
	return nil
}
