package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/certificate"
	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCertificateRepository implements certificate.Repository using GORM
type GormCertificateRepository struct {
	db *gorm.DB
}

// NewGormCertificateRepository creates a new GormCertificateRepository
func NewGormCertificateRepository(db *gorm.DB) *GormCertificateRepository {
	return &GormCertificateRepository{db: db}
}

// FindBySerial finds a certificate by its public serial
func (r *GormCertificateRepository) FindBySerial(ctx context.Context, serial string) (*certificate.Certificate, error) {
	var cert certificate.Certificate
	if err := r.db.WithContext(ctx).First(&cert, "serial = ?", serial).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cert, nil
}

// FindByUserAndAchievement finds the certificate for the issuance triple
func (r *GormCertificateRepository) FindByUserAndAchievement(ctx context.Context, userID, achievementID uuid.UUID, certType catalog.CertificateType) (*certificate.Certificate, error) {
	var cert certificate.Certificate
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND achievement_id = ? AND type = ?", userID, achievementID, certType).
		First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cert, nil
}

// FindByUser lists a user's certificates, newest first
func (r *GormCertificateRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]certificate.Certificate, error) {
	var certs []certificate.Certificate
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

// FindOrCreate inserts the candidate or yields to the row that beat it. The
// unique index on (user_id, achievement_id, type) arbitrates concurrent
// issuance across instances: the losing insert is a conflict no-op and the
// winner's row is returned. The audit entry is written only with a real
// insert, inside the same transaction.
func (r *GormCertificateRepository) FindOrCreate(ctx context.Context, candidate *certificate.Certificate) (*certificate.Certificate, bool, error) {
	created := false
	result := candidate

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}, {Name: "type"}},
			DoNothing: true,
		}).Create(candidate)
		if insert.Error != nil {
			return insert.Error
		}

		if insert.RowsAffected == 0 {
			var existing certificate.Certificate
			if err := tx.
				Where("user_id = ? AND achievement_id = ? AND type = ?",
					candidate.UserID, candidate.AchievementID, candidate.Type).
				First(&existing).Error; err != nil {
				return err
			}
			result = &existing
			return nil
		}

		created = true
		entry := commerce.NewActivityLog(
			candidate.UserID,
			commerce.ActivityCertificateIssued,
			candidate.ID,
			fmt.Sprintf("%s certificate %s for %q", candidate.Type, candidate.Serial, candidate.AchievementTitle),
		)
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

var _ certificate.Repository = (*GormCertificateRepository)(nil)
