package certificate

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Certificate is issued at most once per (user, achievement, type). The
// uniqueness constraint on that triple is the cross-instance correctness
// guarantee; the in-process issuance lock is only a coalescing optimization.
type Certificate struct {
	shared.BaseEntity
	UserID           uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_certificate_user_achievement,priority:1"`
	AchievementID    uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_certificate_user_achievement,priority:2"`
	Type             catalog.CertificateType `gorm:"size:32;not null;uniqueIndex:idx_certificate_user_achievement,priority:3"`
	Serial           string                  `gorm:"size:64;not null;uniqueIndex"`
	HolderName       string                  `gorm:"size:255;not null"`
	AchievementTitle string                  `gorm:"size:255;not null"`
	IssuedAt         time.Time               `gorm:"not null"`
	ExpiresAt        *time.Time              `gorm:"default:null"`
}

// TableName returns the table name for GORM
func (Certificate) TableName() string {
	return "certificates"
}

// NewCertificate issues a certificate with a freshly generated serial
func NewCertificate(userID, achievementID uuid.UUID, certType catalog.CertificateType, holderName, achievementTitle string) (*Certificate, error) {
	if userID == uuid.Nil || achievementID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if !certType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CERTIFICATE_TYPE", "Unknown certificate type")
	}
	serial, err := NewSerial()
	if err != nil {
		return nil, err
	}
	return &Certificate{
		BaseEntity:       shared.NewBaseEntity(),
		UserID:           userID,
		AchievementID:    achievementID,
		Type:             certType,
		Serial:           serial,
		HolderName:       holderName,
		AchievementTitle: achievementTitle,
		IssuedAt:         time.Now(),
	}, nil
}

// NewSerial generates a globally unique public certificate identifier.
// The serial is the only value exposed on the public verification endpoint.
func NewSerial() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate certificate serial: %w", err)
	}
	return fmt.Sprintf("CERT-%d-%s", time.Now().Year(), strings.ToUpper(hex.EncodeToString(buf))), nil
}

// IsExpired reports whether the certificate has lapsed at the given time
func (c *Certificate) IsExpired(at time.Time) bool {
	return c.ExpiresAt != nil && at.After(*c.ExpiresAt)
}
