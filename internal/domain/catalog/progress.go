package catalog

import (
	"context"
	"time"

	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LessonCompletion marks one lesson of a course finished by a user.
// Completion of the course means one row per lesson up to LessonCount.
type LessonCompletion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_completion,priority:1"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_completion,priority:2"`
	LessonIndex int       `gorm:"not null;uniqueIndex:idx_lesson_completion,priority:3"`
	CompletedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LessonCompletion) TableName() string {
	return "lesson_completions"
}

// NewLessonCompletion records a finished lesson
func NewLessonCompletion(userID, courseID uuid.UUID, lessonIndex int) (*LessonCompletion, error) {
	if userID == uuid.Nil || courseID == uuid.Nil || lessonIndex < 0 {
		return nil, shared.ErrInvalidInput
	}
	return &LessonCompletion{
		ID:          uuid.New(),
		UserID:      userID,
		CourseID:    courseID,
		LessonIndex: lessonIndex,
		CompletedAt: time.Now(),
	}, nil
}

// ProgressRepository defines persistence operations for lesson progress
type ProgressRepository interface {
	MarkCompleted(ctx context.Context, completion *LessonCompletion) error
	CountCompleted(ctx context.Context, userID, courseID uuid.UUID) (int, error)
}
