package persistence

import (
	"context"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProgressRepository implements catalog.ProgressRepository using GORM
type GormProgressRepository struct {
	db *gorm.DB
}

// NewGormProgressRepository creates a new GormProgressRepository
func NewGormProgressRepository(db *gorm.DB) *GormProgressRepository {
	return &GormProgressRepository{db: db}
}

// MarkCompleted records a finished lesson. Re-finishing a lesson is a no-op.
func (r *GormProgressRepository) MarkCompleted(ctx context.Context, completion *catalog.LessonCompletion) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "lesson_index"}},
			DoNothing: true,
		}).
		Create(completion).Error
}

// CountCompleted counts the lessons a user has finished in a course
func (r *GormProgressRepository) CountCompleted(ctx context.Context, userID, courseID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.LessonCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

var _ catalog.ProgressRepository = (*GormProgressRepository)(nil)
