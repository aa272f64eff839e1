package delegation

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"approval-router/internal/domain/rule"
)

var ErrNotFound = errors.New("delegation not found")

// Delegation is a time-bounded grant letting one user act in another's
// approval slots. DocumentTypes is a comma-separated allow list (empty means
// all types); MaxAmount caps the document amount (zero means uncapped).
type Delegation struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	DelegationID  string         `gorm:"column:delegation_id;type:char(32);not null;uniqueIndex:ux_delegations_delegation_id"`
	FromUserID    string         `gorm:"column:from_user_id;type:char(32);not null;index"`
	FromUserName  string         `gorm:"column:from_user_name;size:255;not null"`
	ToUserID      string         `gorm:"column:to_user_id;type:char(32);not null;index"`
	ToUserName    string         `gorm:"column:to_user_name;size:255;not null"`
	DocumentTypes string         `gorm:"column:document_types;type:text"`
	MaxAmount     float64        `gorm:"column:max_amount;type:decimal(18,2);not null;default:0"`
	StartDate     time.Time      `gorm:"column:start_date;not null"`
	EndDate       time.Time      `gorm:"column:end_date;not null"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true;index"`
	Reason        string         `gorm:"column:reason;type:text"`
	RevokedAt     *time.Time     `gorm:"column:revoked_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Delegation) TableName() string { return "delegations" }

// ActiveAt reports whether the grant may be exercised at the given instant.
func (d *Delegation) ActiveAt(now time.Time) bool {
	return d.IsActive && !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// Covers reports whether the grant extends to a document of the given type
// and amount.
func (d *Delegation) Covers(dt rule.DocumentType, amount float64) bool {
	if d.MaxAmount > 0 && amount > d.MaxAmount {
		return false
	}
	if strings.TrimSpace(d.DocumentTypes) == "" {
		return true
	}
	for _, s := range strings.Split(d.DocumentTypes, ",") {
		if strings.TrimSpace(s) == string(dt) {
			return true
		}
	}
	return false
}

// Revoke turns the grant off without deleting it.
func (d *Delegation) Revoke(now time.Time) {
	d.IsActive = false
	d.RevokedAt = &now
}
