package persistence

import (
	"context"
	"errors"
	"time"

	certapp "github.com/edustack/backend/internal/application/certificate"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HolderProfile stores the display name snapshotted onto certificates.
// Profiles are synced in from the identity provider; a missing row is a
// regular outcome and issuance falls back to the raw user id.
type HolderProfile struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName string    `gorm:"size:255;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (HolderProfile) TableName() string {
	return "holder_profiles"
}

// GormHolderDirectory implements certificate name resolution over the
// holder_profiles table
type GormHolderDirectory struct {
	db *gorm.DB
}

// NewGormHolderDirectory creates a new GormHolderDirectory
func NewGormHolderDirectory(db *gorm.DB) *GormHolderDirectory {
	return &GormHolderDirectory{db: db}
}

// DisplayName resolves the certificate holder name for a user
func (d *GormHolderDirectory) DisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	var profile HolderProfile
	if err := d.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return profile.DisplayName, nil
}

// Upsert records or refreshes a profile
func (d *GormHolderDirectory) Upsert(ctx context.Context, userID uuid.UUID, displayName string) error {
	profile := HolderProfile{UserID: userID, DisplayName: displayName}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "updated_at"}),
	}).Create(&profile).Error
}

var _ certapp.HolderDirectory = (*GormHolderDirectory)(nil)
