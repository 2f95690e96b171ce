package certificate

import (
	"context"
	"time"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/certificate"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/infrastructure/cache"
	"github.com/edustack/backend/internal/infrastructure/notification"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IssueResult reports the outcome of an issuance attempt. Issued=false with a
// nil error means the achievement is not finished yet; callers poll.
type IssueResult struct {
	Issued         bool                     `json:"issued"`
	NewlyGenerated bool                     `json:"newly_generated"`
	Certificate    *certificate.Certificate `json:"certificate,omitempty"`
}

// HolderDirectory resolves the display name snapshotted onto certificates
type HolderDirectory interface {
	DisplayName(ctx context.Context, userID uuid.UUID) (string, error)
}

// IssuerService issues certificates at most once per (user, achievement,
// type). Concurrent requests inside one process coalesce on an in-flight
// operation; across processes the unique index behind Repository.FindOrCreate
// is the correctness guarantee. The coalescing layer is advisory only and can
// be disabled without weakening the invariant.
type IssuerService struct {
	certificates certificate.Repository
	courses      catalog.CourseRepository
	completion   certificate.CompletionOracle
	entitlement  certificate.EntitlementOracle
	holders      HolderDirectory
	mailer       notification.Mailer
	inflight     *cache.CoalescingGroup[*IssueResult]
	logger       *zap.Logger
}

// IssuerServiceConfig contains dependencies for IssuerService
type IssuerServiceConfig struct {
	Certificates certificate.Repository
	Courses      catalog.CourseRepository
	Completion   certificate.CompletionOracle
	Entitlement  certificate.EntitlementOracle
	Holders      HolderDirectory
	Mailer       notification.Mailer
	LockTTL      time.Duration
	ReleaseDelay time.Duration
	// Coalescing disables the in-process layer when false; issuance then
	// relies solely on the database constraint.
	Coalescing bool
	Logger     *zap.Logger
}

// NewIssuerService creates a new IssuerService
func NewIssuerService(cfg IssuerServiceConfig) *IssuerService {
	svc := &IssuerService{
		certificates: cfg.Certificates,
		courses:      cfg.Courses,
		completion:   cfg.Completion,
		entitlement:  cfg.Entitlement,
		holders:      cfg.Holders,
		mailer:       cfg.Mailer,
		logger:       cfg.Logger,
	}
	if cfg.Coalescing {
		svc.inflight = cache.NewCoalescingGroup[*IssueResult](cfg.LockTTL, cfg.ReleaseDelay)
	}
	return svc
}

// Issue verifies completion and entitlement, then issues the certificate for
// the achievement exactly once. Safe to call from every completion-relevant
// trigger, including concurrently with itself.
func (s *IssuerService) Issue(ctx context.Context, userID, achievementID uuid.UUID, certType catalog.CertificateType) (*IssueResult, error) {
	if s.inflight == nil {
		return s.issue(ctx, userID, achievementID, certType)
	}

	key := userID.String() + ":" + achievementID.String()
	result, coalesced, err := s.inflight.Do(ctx, key, func() (*IssueResult, error) {
		return s.issue(ctx, userID, achievementID, certType)
	})
	if err != nil {
		return nil, err
	}
	if coalesced {
		s.logger.Debug("issuance request coalesced onto in-flight operation",
			zap.String("user_id", userID.String()),
			zap.String("achievement_id", achievementID.String()),
		)
	}
	return result, nil
}

func (s *IssuerService) issue(ctx context.Context, userID, achievementID uuid.UUID, certType catalog.CertificateType) (*IssueResult, error) {
	complete, err := s.completion.IsComplete(ctx, userID, achievementID)
	if err != nil {
		return nil, err
	}
	if !complete {
		return &IssueResult{Issued: false}, nil
	}

	entitled, err := s.isEntitled(ctx, userID, achievementID, certType)
	if err != nil {
		return nil, err
	}
	if !entitled {
		return nil, shared.ErrEntitlementDenied
	}

	holderName, achievementTitle := s.snapshotNames(ctx, userID, achievementID)
	candidate, err := certificate.NewCertificate(userID, achievementID, certType, holderName, achievementTitle)
	if err != nil {
		return nil, err
	}

	cert, created, err := s.certificates.FindOrCreate(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info("certificate issued",
			zap.String("serial", cert.Serial),
			zap.String("user_id", userID.String()),
			zap.String("achievement_id", achievementID.String()),
		)
		if err := s.mailer.SendCertificateIssued(ctx, userID.String(), cert.AchievementTitle, cert.Serial); err != nil {
			s.logger.Warn("failed to send certificate notification",
				zap.String("serial", cert.Serial),
				zap.Error(err),
			)
		}
	}

	return &IssueResult{Issued: true, NewlyGenerated: created, Certificate: cert}, nil
}

// isEntitled checks for a direct purchase or a current subscription whose
// plan covers certificates of this type.
func (s *IssuerService) isEntitled(ctx context.Context, userID, achievementID uuid.UUID, certType catalog.CertificateType) (bool, error) {
	purchased, err := s.entitlement.HasPurchased(ctx, userID, achievementID)
	if err != nil {
		return false, err
	}
	if purchased {
		return true, nil
	}
	return s.entitlement.CurrentSubscriptionCovers(ctx, userID, certType)
}

// snapshotNames resolves the metadata snapshotted onto the certificate.
// Lookups fall back to ids so a directory outage cannot block issuance.
func (s *IssuerService) snapshotNames(ctx context.Context, userID, achievementID uuid.UUID) (string, string) {
	holderName := userID.String()
	if s.holders != nil {
		if name, err := s.holders.DisplayName(ctx, userID); err == nil && name != "" {
			holderName = name
		}
	}

	achievementTitle := achievementID.String()
	if course, err := s.courses.FindByID(ctx, achievementID); err == nil {
		achievementTitle = course.Title
	}
	return holderName, achievementTitle
}
