package commerce

import (
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRecord is an immutable entry created once per successful capture.
// It is never updated after insertion.
type PaymentRecord struct {
	shared.BaseEntity
	PurchaseID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency          string          `gorm:"size:3;not null"`
	Provider          string          `gorm:"size:32;not null"`
	ProviderOrderID   string          `gorm:"size:64;not null;index"`
	ProviderCaptureID string          `gorm:"size:64"`
}

// TableName returns the table name for GORM
func (PaymentRecord) TableName() string {
	return "payment_records"
}

// NewPaymentRecord creates a payment record for a fulfilled purchase
func NewPaymentRecord(purchaseID, userID uuid.UUID, amount decimal.Decimal, currency, provider, orderID, captureID string) *PaymentRecord {
	return &PaymentRecord{
		BaseEntity:        shared.NewBaseEntity(),
		PurchaseID:        purchaseID,
		UserID:            userID,
		Amount:            amount,
		Currency:          currency,
		Provider:          provider,
		ProviderOrderID:   orderID,
		ProviderCaptureID: captureID,
	}
}
