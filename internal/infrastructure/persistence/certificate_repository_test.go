package persistence

import (
	"context"
	"testing"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/certificate"
	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCertificateTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&certificate.Certificate{}, &commerce.ActivityLog{}))
	return db
}

func newTestCertificate(t *testing.T, userID, achievementID uuid.UUID) *certificate.Certificate {
	t.Helper()

	cert, err := certificate.NewCertificate(userID, achievementID, catalog.CertificateTypeCourse, "Ada Lovelace", "Distributed Systems")
	require.NoError(t, err)
	return cert
}

func TestCertificateRepository_FindOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts candidate with audit entry", func(t *testing.T) {
		db := setupCertificateTestDB(t)
		repo := NewGormCertificateRepository(db)

		candidate := newTestCertificate(t, uuid.New(), uuid.New())
		cert, created, err := repo.FindOrCreate(ctx, candidate)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, candidate.Serial, cert.Serial)

		var audits int64
		require.NoError(t, db.Model(&commerce.ActivityLog{}).
			Where("action = ?", commerce.ActivityCertificateIssued).
			Count(&audits).Error)
		assert.Equal(t, int64(1), audits)
	})

	t.Run("second candidate yields to the existing row", func(t *testing.T) {
		db := setupCertificateTestDB(t)
		repo := NewGormCertificateRepository(db)

		userID, achievementID := uuid.New(), uuid.New()
		first := newTestCertificate(t, userID, achievementID)
		winner, created, err := repo.FindOrCreate(ctx, first)
		require.NoError(t, err)
		require.True(t, created)

		second := newTestCertificate(t, userID, achievementID)
		cert, created, err := repo.FindOrCreate(ctx, second)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, winner.ID, cert.ID)
		assert.Equal(t, winner.Serial, cert.Serial)

		var certs, audits int64
		require.NoError(t, db.Model(&certificate.Certificate{}).Count(&certs).Error)
		require.NoError(t, db.Model(&commerce.ActivityLog{}).Count(&audits).Error)
		assert.Equal(t, int64(1), certs)
		assert.Equal(t, int64(1), audits)
	})

	t.Run("same achievement for another user is independent", func(t *testing.T) {
		db := setupCertificateTestDB(t)
		repo := NewGormCertificateRepository(db)

		achievementID := uuid.New()
		_, created, err := repo.FindOrCreate(ctx, newTestCertificate(t, uuid.New(), achievementID))
		require.NoError(t, err)
		require.True(t, created)

		_, created, err = repo.FindOrCreate(ctx, newTestCertificate(t, uuid.New(), achievementID))
		require.NoError(t, err)
		assert.True(t, created)
	})
}

func TestCertificateRepository_FindBySerial(t *testing.T) {
	ctx := context.Background()
	db := setupCertificateTestDB(t)
	repo := NewGormCertificateRepository(db)

	candidate := newTestCertificate(t, uuid.New(), uuid.New())
	_, _, err := repo.FindOrCreate(ctx, candidate)
	require.NoError(t, err)

	got, err := repo.FindBySerial(ctx, candidate.Serial)
	require.NoError(t, err)
	assert.Equal(t, candidate.ID, got.ID)

	_, err = repo.FindBySerial(ctx, "CERT-2026-ffffffffffffffff")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
