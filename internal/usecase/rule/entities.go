package rule

import "time"

type ApproverInput struct {
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	Role         string `json:"role"`
	IsMandatory  bool   `json:"is_mandatory"`
	CanDelegate  bool   `json:"can_delegate"`
	DelegateToID string `json:"delegate_to_id"`
}

type TierInput struct {
	Name               string          `json:"name"`
	MinAmount          float64         `json:"min_amount"`
	MaxAmount          float64         `json:"max_amount"`
	SLAHours           int             `json:"sla_hours"`
	EscalationHours    int             `json:"escalation_hours"`
	RequiresSequential bool            `json:"requires_sequential"`
	MinimumApprovers   int             `json:"minimum_approvers"`
	Approvers          []ApproverInput `json:"approvers"`
}

type RuleInput struct {
	Name         string      `json:"name"`
	DocumentType string      `json:"document_type"`
	IsActive     bool        `json:"is_active"`
	Tiers        []TierInput `json:"tiers"`
}

type ApproverDTO struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Role        string `json:"role,omitempty"`
	IsMandatory bool   `json:"is_mandatory"`
	CanDelegate bool   `json:"can_delegate"`
}

type TierDTO struct {
	Position           int           `json:"position"`
	Name               string        `json:"name"`
	MinAmount          float64       `json:"min_amount"`
	MaxAmount          float64       `json:"max_amount"`
	SLAHours           int           `json:"sla_hours"`
	EscalationHours    int           `json:"escalation_hours"`
	RequiresSequential bool          `json:"requires_sequential"`
	MinimumApprovers   int           `json:"minimum_approvers"`
	Approvers          []ApproverDTO `json:"approvers"`
}

type RuleDTO struct {
	RuleID       string    `json:"rule_id"`
	Name         string    `json:"name"`
	DocumentType string    `json:"document_type"`
	IsActive     bool      `json:"is_active"`
	Tiers        []TierDTO `json:"tiers"`
	CreatedAt    time.Time `json:"created_at"`
}
