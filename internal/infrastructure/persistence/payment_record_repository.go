package persistence

import (
	"context"

	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRecordRepository implements commerce.PaymentRecordRepository using GORM
type GormPaymentRecordRepository struct {
	db *gorm.DB
}

// NewGormPaymentRecordRepository creates a new GormPaymentRecordRepository
func NewGormPaymentRecordRepository(db *gorm.DB) *GormPaymentRecordRepository {
	return &GormPaymentRecordRepository{db: db}
}

// FindByPurchase lists payment records for a purchase
func (r *GormPaymentRecordRepository) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]commerce.PaymentRecord, error) {
	var records []commerce.PaymentRecord
	if err := r.db.WithContext(ctx).
		Where("purchase_id = ?", purchaseID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Create inserts a payment record. Records are append-only.
func (r *GormPaymentRecordRepository) Create(ctx context.Context, record *commerce.PaymentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

var _ commerce.PaymentRecordRepository = (*GormPaymentRecordRepository)(nil)
