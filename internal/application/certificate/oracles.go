package certificate

import (
	"context"
	"errors"
	"time"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/certificate"
	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/domain/subscription"
	"github.com/google/uuid"
)

// CourseCompletionOracle answers completion questions from lesson progress
type CourseCompletionOracle struct {
	courses  catalog.CourseRepository
	progress catalog.ProgressRepository
}

// NewCourseCompletionOracle creates a CourseCompletionOracle
func NewCourseCompletionOracle(courses catalog.CourseRepository, progress catalog.ProgressRepository) *CourseCompletionOracle {
	return &CourseCompletionOracle{courses: courses, progress: progress}
}

// IsComplete reports whether the user has finished every lesson of the
// achievement. A course with no lessons is never complete.
func (o *CourseCompletionOracle) IsComplete(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	course, err := o.courses.FindByID(ctx, achievementID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if course.LessonCount <= 0 {
		return false, nil
	}

	completed, err := o.progress.CountCompleted(ctx, userID, achievementID)
	if err != nil {
		return false, err
	}
	return completed >= course.LessonCount, nil
}

// StoredEntitlementOracle answers entitlement questions from purchases,
// enrollments and the current subscription
type StoredEntitlementOracle struct {
	purchases     commerce.PurchaseRepository
	enrollments   commerce.EnrollmentRepository
	subscriptions subscription.Repository
	plans         subscription.PlanRepository
}

// NewStoredEntitlementOracle creates a StoredEntitlementOracle
func NewStoredEntitlementOracle(
	purchases commerce.PurchaseRepository,
	enrollments commerce.EnrollmentRepository,
	subscriptions subscription.Repository,
	plans subscription.PlanRepository,
) *StoredEntitlementOracle {
	return &StoredEntitlementOracle{
		purchases:     purchases,
		enrollments:   enrollments,
		subscriptions: subscriptions,
		plans:         plans,
	}
}

// HasPurchased reports whether the user holds a paid purchase of the course
func (o *StoredEntitlementOracle) HasPurchased(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	return o.purchases.HasPaidPurchase(ctx, userID, courseID)
}

// HasAccess reports whether the user may consume the course content, via an
// enrollment or a currently entitling subscription
func (o *StoredEntitlementOracle) HasAccess(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	_, err := o.enrollments.FindByUserAndCourse(ctx, userID, courseID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return false, err
	}

	sub, err := o.currentSubscription(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub != nil, nil
}

// CurrentSubscriptionCovers reports whether the user's current subscription
// plan includes certificates of the given type
func (o *StoredEntitlementOracle) CurrentSubscriptionCovers(ctx context.Context, userID uuid.UUID, certType catalog.CertificateType) (bool, error) {
	sub, err := o.currentSubscription(ctx, userID)
	if err != nil || sub == nil {
		return false, err
	}

	plan, err := o.plans.FindByID(ctx, sub.PlanID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return plan.IncludesCertificates(certType), nil
}

func (o *StoredEntitlementOracle) currentSubscription(ctx context.Context, userID uuid.UUID) (*subscription.Subscription, error) {
	sub, err := o.subscriptions.FindCurrentByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !sub.IsCurrent(time.Now()) {
		return nil, nil
	}
	return sub, nil
}

var (
	_ certificate.CompletionOracle  = (*CourseCompletionOracle)(nil)
	_ certificate.EntitlementOracle = (*StoredEntitlementOracle)(nil)
)
