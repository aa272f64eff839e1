package approval

import (
	"time"
)

type SubmitInput struct {
	DocumentType   string  `json:"document_type"`
	DocumentID     string  `json:"document_id"`
	DocumentNumber string  `json:"document_number"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	RequesterID    string  `json:"requester_id"`
	RequesterName  string  `json:"requester_name"`
}

type ActionInput struct {
	RequestID string
	ActorID   string
	ActorName string
	Comment   string
}

type EscalateInput struct {
	RequestID string
	ActorID   string
	ActorName string
	Reason    string
}

type CommentInput struct {
	RequestID  string
	AuthorID   string
	AuthorName string
	Body       string
	IsInternal bool
}

type ChainItemDTO struct {
	Level             int        `json:"level"`
	ApproverID        string     `json:"approver_id"`
	ApproverName      string     `json:"approver_name"`
	Role              string     `json:"role,omitempty"`
	Status            string     `json:"status"`
	IsMandatory       bool       `json:"is_mandatory"`
	DelegatedFromID   string     `json:"delegated_from_id,omitempty"`
	DelegatedFromName string     `json:"delegated_from_name,omitempty"`
	ActionedAt        *time.Time `json:"actioned_at,omitempty"`
	Comment           string     `json:"comment,omitempty"`
}

type CommentDTO struct {
	CommentID  string    `json:"comment_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

type RequestDTO struct {
	RequestID      string         `json:"request_id"`
	DocumentType   string         `json:"document_type"`
	DocumentID     string         `json:"document_id"`
	DocumentNumber string         `json:"document_number"`
	Amount         float64        `json:"amount"`
	Currency       string         `json:"currency"`
	RequesterID    string         `json:"requester_id"`
	RequesterName  string         `json:"requester_name"`
	TierName       string         `json:"tier_name"`
	CurrentLevel   int            `json:"current_level"`
	Status         string         `json:"status"`
	RequestedAt    time.Time      `json:"requested_at"`
	DueAt          time.Time      `json:"due_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	Chain          []ChainItemDTO `json:"chain"`
	Comments       []CommentDTO   `json:"comments,omitempty"`
}

type Statistics struct {
	Total            int            `json:"total"`
	ByStatus         map[string]int `json:"by_status"`
	ByDocumentType   map[string]int `json:"by_document_type"`
	AvgApprovalHours float64        `json:"avg_approval_hours"`
	SLACompliancePct float64        `json:"sla_compliance_pct"`
	PendingByTier    map[string]int `json:"pending_by_tier"`
}
