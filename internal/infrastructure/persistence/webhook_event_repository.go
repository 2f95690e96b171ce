package persistence

import (
	"context"

	"github.com/edustack/backend/internal/domain/webhook"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWebhookLedger implements webhook.Ledger using GORM
type GormWebhookLedger struct {
	db *gorm.DB
}

// NewGormWebhookLedger creates a new GormWebhookLedger
func NewGormWebhookLedger(db *gorm.DB) *GormWebhookLedger {
	return &GormWebhookLedger{db: db}
}

// Register inserts a ledger row for the event. The unique index on
// (provider, event_id) turns concurrent duplicate deliveries into a silent
// conflict; exactly one caller observes registered=true.
func (r *GormWebhookLedger) Register(ctx context.Context, provider, eventID, eventType string, payload []byte) (bool, error) {
	record := webhook.NewEventRecord(provider, eventID, eventType, payload)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}, {Name: "event_id"}},
			DoNothing: true,
		}).
		Create(record)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

var _ webhook.Ledger = (*GormWebhookLedger)(nil)
