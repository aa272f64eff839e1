package delegation

import "time"

type GrantInput struct {
	FromUserID    string    `json:"from_user_id"`
	FromUserName  string    `json:"from_user_name"`
	ToUserID      string    `json:"to_user_id"`
	ToUserName    string    `json:"to_user_name"`
	DocumentTypes []string  `json:"document_types"`
	MaxAmount     float64   `json:"max_amount"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Reason        string    `json:"reason"`
}

type DelegationDTO struct {
	DelegationID  string     `json:"delegation_id"`
	FromUserID    string     `json:"from_user_id"`
	FromUserName  string     `json:"from_user_name"`
	ToUserID      string     `json:"to_user_id"`
	ToUserName    string     `json:"to_user_name"`
	DocumentTypes []string   `json:"document_types,omitempty"`
	MaxAmount     float64    `json:"max_amount,omitempty"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	IsActive      bool       `json:"is_active"`
	Reason        string     `json:"reason,omitempty"`
	RevokedAt     *time.Time `json:"revoked_at,omitempty"`
}
