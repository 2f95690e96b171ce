package persistence

import (
	"context"
	"errors"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCourseRepository implements catalog.CourseRepository using GORM
type GormCourseRepository struct {
	db *gorm.DB
}

// NewGormCourseRepository creates a new GormCourseRepository
func NewGormCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

// FindByID finds a course by its ID
func (r *GormCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Course, error) {
	var course catalog.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// FindBySlug finds a course by its URL slug
func (r *GormCourseRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Course, error) {
	var course catalog.Course
	if err := r.db.WithContext(ctx).First(&course, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// FindPublished lists published courses with pagination
func (r *GormCourseRepository) FindPublished(ctx context.Context, filter shared.Filter) ([]catalog.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Course{}).Where("published = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var courses []catalog.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// Save creates or updates a course
func (r *GormCourseRepository) Save(ctx context.Context, course *catalog.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete deletes a course
func (r *GormCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Course{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.CourseRepository = (*GormCourseRepository)(nil)
