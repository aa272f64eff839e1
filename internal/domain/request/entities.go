package request

import (
	"errors"
	"time"

	"approval-router/internal/domain/rule"
)

var (
	ErrNotFound      = errors.New("approval request not found")
	ErrNotPending    = errors.New("approval request is not pending")
	ErrNotAuthorized = errors.New("user not authorized to act on this request")
)

type Status string

const (
	StatusPending      Status = "pending"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusEscalated    Status = "escalated"
	StatusAutoApproved Status = "auto_approved"
)

// Terminal reports whether no further approver action is possible.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusAutoApproved
}

// Actionable reports whether approve/reject/escalate may still act on a
// request in this status. Escalated requests stay actionable: escalation adds
// approvers, it does not close the request.
func (s Status) Actionable() bool {
	return s == StatusPending || s == StatusEscalated
}

type ItemStatus string

const (
	ItemPending      ItemStatus = "pending"
	ItemApproved     ItemStatus = "approved"
	ItemRejected     ItemStatus = "rejected"
	ItemDelegated    ItemStatus = "delegated"
	ItemEscalated    ItemStatus = "escalated"
	ItemAutoApproved ItemStatus = "auto_approved"
)

// ApprovalRequest is the live routing instance for one submitted document.
// It is created once per submission, mutated in place by approver actions and
// kept forever as audit history.
type ApprovalRequest struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	RequestID      string            `gorm:"column:request_id;type:char(32);not null;uniqueIndex:ux_requests_request_id"`
	DocumentType   rule.DocumentType `gorm:"column:document_type;size:32;not null;index"`
	DocumentID     string            `gorm:"column:document_id;type:char(32);not null;index"`
	DocumentNumber string            `gorm:"column:document_number;size:64;not null"`
	Amount         float64           `gorm:"column:amount;type:decimal(18,2);not null"`
	Currency       string            `gorm:"column:currency;type:char(3);not null"`
	RequesterID    string            `gorm:"column:requester_id;type:char(32);not null;index"`
	RequesterName  string            `gorm:"column:requester_name;size:255;not null"`
	RuleID         string            `gorm:"column:rule_id;type:char(32);not null"`
	TierID         uint64            `gorm:"column:tier_id;not null"`
	TierName       string            `gorm:"column:tier_name;size:255;not null"`
	// Advisory position counter for sequential tiers; never gates which
	// chain items are actionable.
	CurrentLevel int         `gorm:"column:current_level;not null;default:1"`
	Status       Status      `gorm:"column:status;size:16;not null;index"`
	RequestedAt  time.Time   `gorm:"column:requested_at;not null"`
	DueAt        time.Time   `gorm:"column:due_at;not null;index"`
	CompletedAt  *time.Time  `gorm:"column:completed_at"`
	Chain        []ChainItem `gorm:"foreignKey:RequestID;references:ID"`
	Comments     []Comment   `gorm:"foreignKey:RequestID;references:ID"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (ApprovalRequest) TableName() string { return "approval_requests" }

// ChainItem is one approver's slot in a request's chain. Level equals the
// position of the tier the slot was materialized from.
type ChainItem struct {
	ID                uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	RequestID         uint64     `gorm:"column:request_id;not null;index"`
	Level             int        `gorm:"column:level;not null"`
	ApproverID        string     `gorm:"column:approver_id;type:char(32);not null;index"`
	ApproverName      string     `gorm:"column:approver_name;size:255;not null"`
	Role              string     `gorm:"column:role;size:128"`
	Status            ItemStatus `gorm:"column:status;size:16;not null"`
	IsMandatory       bool       `gorm:"column:is_mandatory;not null;default:true"`
	DelegatedFromID   string     `gorm:"column:delegated_from_id;type:char(32)"`
	DelegatedFromName string     `gorm:"column:delegated_from_name;size:255"`
	ActionedAt        *time.Time `gorm:"column:actioned_at"`
	Comment           string     `gorm:"column:comment;type:text"`
}

func (ChainItem) TableName() string { return "approval_chain_items" }

// Comment is one entry of a request's append-only comment log. IsInternal is
// a display hint for consuming UIs, nothing here enforces it.
type Comment struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	RequestID  uint64    `gorm:"column:request_id;not null;index"`
	CommentID  string    `gorm:"column:comment_id;type:char(36);not null"`
	AuthorID   string    `gorm:"column:author_id;type:char(32);not null"`
	AuthorName string    `gorm:"column:author_name;size:255;not null"`
	Body       string    `gorm:"column:body;type:text;not null"`
	IsInternal bool      `gorm:"column:is_internal;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Comment) TableName() string { return "approval_comments" }

// AllDecided reports whether every chain item reached approved or
// auto_approved, i.e. the request as a whole is complete.
func (r *ApprovalRequest) AllDecided() bool {
	for i := range r.Chain {
		if r.Chain[i].Status != ItemApproved && r.Chain[i].Status != ItemAutoApproved {
			return false
		}
	}
	return len(r.Chain) > 0
}

// PendingItems returns pointers to the chain items still awaiting action.
func (r *ApprovalRequest) PendingItems() []*ChainItem {
	var out []*ChainItem
	for i := range r.Chain {
		if r.Chain[i].Status == ItemPending {
			out = append(out, &r.Chain[i])
		}
	}
	return out
}

// Overdue reports whether the request is still open past its SLA deadline.
func (r *ApprovalRequest) Overdue(now time.Time) bool {
	return r.Status.Actionable() && now.After(r.DueAt)
}

// MetSLA reports whether a completed request finished within its deadline.
func (r *ApprovalRequest) MetSLA() bool {
	return r.CompletedAt != nil && !r.CompletedAt.After(r.DueAt)
}
