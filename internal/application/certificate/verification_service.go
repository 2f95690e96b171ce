package certificate

import (
	"context"
	"errors"
	"time"

	"github.com/edustack/backend/internal/domain/certificate"
	"github.com/edustack/backend/internal/domain/shared"
)

// VerificationStatus classifies a public verification lookup
type VerificationStatus string

const (
	VerificationValid    VerificationStatus = "valid"
	VerificationExpired  VerificationStatus = "expired"
	VerificationNotFound VerificationStatus = "not_found"
)

// VerificationResult is the redacted public view of a certificate
type VerificationResult struct {
	Status           VerificationStatus `json:"status"`
	Serial           string             `json:"serial,omitempty"`
	HolderName       string             `json:"holder_name,omitempty"`
	AchievementTitle string             `json:"achievement_title,omitempty"`
	IssuedAt         *time.Time         `json:"issued_at,omitempty"`
	ExpiresAt        *time.Time         `json:"expires_at,omitempty"`
}

// VerificationService answers unauthenticated certificate lookups by serial
type VerificationService struct {
	certificates certificate.Repository
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(certificates certificate.Repository) *VerificationService {
	return &VerificationService{certificates: certificates}
}

// Verify looks up a certificate by its public serial. Unknown serials are a
// regular outcome, not an error.
func (s *VerificationService) Verify(ctx context.Context, serial string) (*VerificationResult, error) {
	cert, err := s.certificates.FindBySerial(ctx, serial)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &VerificationResult{Status: VerificationNotFound}, nil
		}
		return nil, err
	}

	status := VerificationValid
	if cert.IsExpired(time.Now()) {
		status = VerificationExpired
	}

	return &VerificationResult{
		Status:           status,
		Serial:           cert.Serial,
		HolderName:       cert.HolderName,
		AchievementTitle: cert.AchievementTitle,
		IssuedAt:         &cert.IssuedAt,
		ExpiresAt:        cert.ExpiresAt,
	}, nil
}
