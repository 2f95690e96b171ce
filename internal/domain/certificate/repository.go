package certificate

import (
	"context"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// Repository defines persistence operations for certificates
type Repository interface {
	FindBySerial(ctx context.Context, serial string) (*Certificate, error)
	FindByUserAndAchievement(ctx context.Context, userID, achievementID uuid.UUID, certType catalog.CertificateType) (*Certificate, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Certificate, error)

	// FindOrCreate returns the existing certificate for the triple or inserts
	// the candidate together with its audit entry in one transaction.
	// created=false means an existing row won.
	FindOrCreate(ctx context.Context, candidate *Certificate) (cert *Certificate, created bool, err error)
}

// CompletionOracle answers whether a user has finished all required units of
// an achievement
type CompletionOracle interface {
	IsComplete(ctx context.Context, userID, achievementID uuid.UUID) (bool, error)
}

// EntitlementOracle answers access questions for certificate issuance and
// content delivery
type EntitlementOracle interface {
	HasPurchased(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	HasAccess(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	// CurrentSubscriptionCovers reports whether the user's current
	// subscription plan tier includes certificates of the given type.
	CurrentSubscriptionCovers(ctx context.Context, userID uuid.UUID, certType catalog.CertificateType) (bool, error)
}
