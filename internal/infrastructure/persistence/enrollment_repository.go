package persistence

import (
	"context"
	"errors"

	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEnrollmentRepository implements commerce.EnrollmentRepository using GORM
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewGormEnrollmentRepository creates a new GormEnrollmentRepository
func NewGormEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

// FindByUserAndCourse finds the enrollment for a user/course pair
func (r *GormEnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*commerce.Enrollment, error) {
	var enrollment commerce.Enrollment
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

// FindByUser lists a user's enrollments
func (r *GormEnrollmentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]commerce.Enrollment, error) {
	var enrollments []commerce.Enrollment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// Upsert inserts the enrollment, leaving an existing (user, course) row alone
func (r *GormEnrollmentRepository) Upsert(ctx context.Context, enrollment *commerce.Enrollment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(enrollment).Error
}

var _ commerce.EnrollmentRepository = (*GormEnrollmentRepository)(nil)
