package notification

import (
	"context"

	"github.com/edustack/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Mailer delivers buyer-facing notifications. All deliveries are best-effort:
// callers log failures and move on, a lost mail never fails a transaction.
type Mailer interface {
	SendPurchaseReceipt(ctx context.Context, userID string, courseTitle string, amount decimal.Decimal, currency string) error
	SendCertificateIssued(ctx context.Context, userID string, achievementTitle, serial string) error
	SendSubscriptionNotice(ctx context.Context, userID string, notice string) error
}

// LogMailer writes notifications to the structured log instead of sending
// them. It stands in until an outbound mail provider is configured.
type LogMailer struct {
	cfg    config.MailConfig
	logger *zap.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer(cfg config.MailConfig, logger *zap.Logger) *LogMailer {
	return &LogMailer{cfg: cfg, logger: logger}
}

// SendPurchaseReceipt logs a purchase receipt notification
func (m *LogMailer) SendPurchaseReceipt(ctx context.Context, userID string, courseTitle string, amount decimal.Decimal, currency string) error {
	if !m.cfg.Enabled {
		return nil
	}
	m.logger.Info("purchase receipt",
		zap.String("from", m.cfg.FromAddress),
		zap.String("user_id", userID),
		zap.String("course", courseTitle),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("currency", currency),
	)
	return nil
}

// SendCertificateIssued logs a certificate issuance notification
func (m *LogMailer) SendCertificateIssued(ctx context.Context, userID string, achievementTitle, serial string) error {
	if !m.cfg.Enabled {
		return nil
	}
	m.logger.Info("certificate issued notification",
		zap.String("from", m.cfg.FromAddress),
		zap.String("user_id", userID),
		zap.String("achievement", achievementTitle),
		zap.String("serial", serial),
	)
	return nil
}

// SendSubscriptionNotice logs a subscription lifecycle notification
func (m *LogMailer) SendSubscriptionNotice(ctx context.Context, userID string, notice string) error {
	if !m.cfg.Enabled {
		return nil
	}
	m.logger.Info("subscription notice",
		zap.String("from", m.cfg.FromAddress),
		zap.String("user_id", userID),
		zap.String("notice", notice),
	)
	return nil
}

var _ Mailer = (*LogMailer)(nil)
