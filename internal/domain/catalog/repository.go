package catalog

import (
	"context"

	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CourseRepository defines persistence operations for courses
type CourseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Course, error)
	FindBySlug(ctx context.Context, slug string) (*Course, error)
	FindPublished(ctx context.Context, filter shared.Filter) ([]Course, int64, error)
	Save(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}
