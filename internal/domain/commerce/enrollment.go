package commerce

import (
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EnrollmentSource records how access to a course was obtained
type EnrollmentSource string

const (
	EnrollmentSourcePurchase     EnrollmentSource = "purchase"
	EnrollmentSourceSubscription EnrollmentSource = "subscription"
)

// Enrollment grants a user access to a course. There is exactly one row per
// (user, course) pair regardless of how many times access was re-acquired;
// fulfillment upserts it.
type Enrollment struct {
	shared.BaseEntity
	UserID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course,priority:1"`
	CourseID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course,priority:2"`
	Source   EnrollmentSource `gorm:"size:16;not null;default:'purchase'"`
}

// TableName returns the table name for GORM
func (Enrollment) TableName() string {
	return "enrollments"
}

// NewEnrollment creates an access grant for a user/course pair
func NewEnrollment(userID, courseID uuid.UUID, source EnrollmentSource) (*Enrollment, error) {
	if userID == uuid.Nil || courseID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	return &Enrollment{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		CourseID:   courseID,
		Source:     source,
	}, nil
}
