package commerce

import (
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Activity actions recorded in the audit log
const (
	ActivityPurchaseCompleted    = "purchase.completed"
	ActivityCertificateIssued    = "certificate.issued"
	ActivitySubscriptionReplaced = "subscription.replaced"
	ActivitySubscriptionUpdated  = "subscription.updated"
)

// ActivityLog is an append-only audit entry
type ActivityLog struct {
	shared.BaseEntity
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Action  string    `gorm:"size:64;not null;index"`
	Subject uuid.UUID `gorm:"type:uuid;not null"`
	Detail  string    `gorm:"size:512"`
}

// TableName returns the table name for GORM
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// NewActivityLog creates an audit entry
func NewActivityLog(userID uuid.UUID, action string, subject uuid.UUID, detail string) *ActivityLog {
	return &ActivityLog{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Action:     action,
		Subject:    subject,
		Detail:     detail,
	}
}
