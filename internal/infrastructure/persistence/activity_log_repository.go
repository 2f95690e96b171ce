package persistence

import (
	"context"

	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormActivityLogRepository implements commerce.ActivityLogRepository using GORM
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create appends an audit entry
func (r *GormActivityLogRepository) Create(ctx context.Context, entry *commerce.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByUser lists a user's most recent audit entries
func (r *GormActivityLogRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]commerce.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []commerce.ActivityLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

var _ commerce.ActivityLogRepository = (*GormActivityLogRepository)(nil)
