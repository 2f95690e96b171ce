package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/domain/subscription"
	"github.com/edustack/backend/internal/infrastructure/notification"
	"github.com/edustack/backend/internal/infrastructure/payment"
	"go.uber.org/zap"
)

// LifecycleService applies gateway-reported subscription events through the
// status transition policy. Local commits are authoritative; the external
// cancellation of displaced siblings is advisory and independently retryable.
type LifecycleService struct {
	subscriptions subscription.Repository
	plans         subscription.PlanRepository
	activityLog   commerce.ActivityLogRepository
	gateway       payment.Gateway
	mailer        notification.Mailer
	logger        *zap.Logger
}

// LifecycleServiceConfig contains dependencies for LifecycleService
type LifecycleServiceConfig struct {
	Subscriptions subscription.Repository
	Plans         subscription.PlanRepository
	ActivityLog   commerce.ActivityLogRepository
	Gateway       payment.Gateway
	Mailer        notification.Mailer
	Logger        *zap.Logger
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(cfg LifecycleServiceConfig) *LifecycleService {
	return &LifecycleService{
		subscriptions: cfg.Subscriptions,
		plans:         cfg.Plans,
		activityLog:   cfg.ActivityLog,
		gateway:       cfg.Gateway,
		mailer:        cfg.Mailer,
		logger:        cfg.Logger,
	}
}

// HandleActivated marks the subscription active and displaces every other
// non-terminal subscription of the same buyer: best-effort cancel at the
// gateway first, then one local transaction that records the activation and
// expires the siblings.
func (s *LifecycleService) HandleActivated(ctx context.Context, providerSubID string, periodStart, periodEnd time.Time) error {
	sub, err := s.findForEvent(ctx, providerSubID)
	if err != nil || sub == nil {
		return err
	}

	if sub.Status == subscription.StatusActive {
		s.logger.Info("subscription already active, skipping",
			zap.String("subscription_id", sub.ID.String()),
		)
		return nil
	}

	if periodStart.IsZero() {
		periodStart = time.Now()
	}
	if periodEnd.IsZero() {
		periodEnd, err = s.nextBillingFromPlan(ctx, sub)
		if err != nil {
			return err
		}
	}

	if err := sub.Activate(periodStart, periodEnd); err != nil {
		return err
	}

	siblings, err := s.subscriptions.FindNonTerminalByUser(ctx, sub.UserID)
	if err != nil {
		return err
	}
	displaced := make([]subscription.Subscription, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID == sub.ID {
			continue
		}
		displaced = append(displaced, sibling)
	}

	for _, sibling := range displaced {
		if sibling.ProviderSubscriptionID == "" {
			continue
		}
		if err := s.gateway.CancelSubscription(ctx, sibling.ProviderSubscriptionID, "superseded by a newer subscription"); err != nil {
			// The local expiry below still happens; the gateway-side record
			// can be reconciled later.
			s.logger.Warn("failed to cancel displaced subscription at gateway",
				zap.String("provider_subscription_id", sibling.ProviderSubscriptionID),
				zap.Error(err),
			)
		}
	}

	if err := s.subscriptions.SaveActivationReplacing(ctx, sub, displaced); err != nil {
		return err
	}

	if len(displaced) > 0 {
		entry := commerce.NewActivityLog(sub.UserID, commerce.ActivitySubscriptionReplaced, sub.ID,
			fmt.Sprintf("replaced %d prior subscription(s)", len(displaced)))
		if err := s.activityLog.Create(ctx, entry); err != nil {
			s.logger.Warn("failed to record subscription replacement", zap.Error(err))
		}
	}

	s.logger.Info("subscription activated",
		zap.String("subscription_id", sub.ID.String()),
		zap.Int("displaced", len(displaced)),
	)
	s.notify(ctx, sub, "Your subscription is now active")
	return nil
}

// HandleRenewed extends the billing period after a successful recurring
// charge, reviving a stale status through the policy. When the event does
// not carry the next billing time, it is derived from the plan interval.
func (s *LifecycleService) HandleRenewed(ctx context.Context, providerSubID string, nextBillingTime time.Time) error {
	sub, err := s.findForEvent(ctx, providerSubID)
	if err != nil || sub == nil {
		return err
	}

	if nextBillingTime.IsZero() {
		nextBillingTime, err = s.nextBillingFromPlan(ctx, sub)
		if err != nil {
			return err
		}
	}

	if err := sub.ExtendPeriod(nextBillingTime); err != nil {
		return err
	}
	if err := s.subscriptions.Save(ctx, sub); err != nil {
		return err
	}

	s.logger.Info("subscription period extended",
		zap.String("subscription_id", sub.ID.String()),
		zap.Time("period_end", sub.CurrentPeriodEnd),
	)
	return nil
}

// HandleCancelled marks the subscription cancelled. Access continues until
// the end of the already-paid period.
func (s *LifecycleService) HandleCancelled(ctx context.Context, providerSubID string) error {
	return s.transition(ctx, providerSubID, "cancelled", func(sub *subscription.Subscription) error {
		return sub.Cancel(time.Now())
	})
}

// HandleSuspended marks the subscription past due after a failed charge
func (s *LifecycleService) HandleSuspended(ctx context.Context, providerSubID string) error {
	return s.transition(ctx, providerSubID, "past_due", func(sub *subscription.Subscription) error {
		return sub.MarkPastDue()
	})
}

// HandleExpired marks the subscription expired
func (s *LifecycleService) HandleExpired(ctx context.Context, providerSubID string) error {
	return s.transition(ctx, providerSubID, "expired", func(sub *subscription.Subscription) error {
		return sub.Expire()
	})
}

func (s *LifecycleService) transition(ctx context.Context, providerSubID, target string, apply func(*subscription.Subscription) error) error {
	sub, err := s.findForEvent(ctx, providerSubID)
	if err != nil || sub == nil {
		return err
	}

	if err := apply(sub); err != nil {
		if errors.Is(err, shared.ErrInvalidStateTransition) {
			s.logger.Warn("illegal subscription transition from gateway event",
				zap.String("subscription_id", sub.ID.String()),
				zap.String("from", sub.Status.String()),
				zap.String("to", target),
			)
		}
		return err
	}
	if err := s.subscriptions.Save(ctx, sub); err != nil {
		return err
	}

	entry := commerce.NewActivityLog(sub.UserID, commerce.ActivitySubscriptionUpdated, sub.ID, "status: "+target)
	if err := s.activityLog.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record subscription update", zap.Error(err))
	}

	s.logger.Info("subscription transitioned",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("status", target),
	)
	return nil
}

// findForEvent resolves the local subscription for a gateway event. An
// unknown subscription is not an error: the event is acknowledged so the
// provider stops redelivering it.
func (s *LifecycleService) findForEvent(ctx context.Context, providerSubID string) (*subscription.Subscription, error) {
	sub, err := s.subscriptions.FindByProviderSubscriptionID(ctx, providerSubID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("subscription event for unknown subscription, acknowledging",
				zap.String("provider_subscription_id", providerSubID),
			)
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

// nextBillingFromPlan advances the current period end by one plan interval
func (s *LifecycleService) nextBillingFromPlan(ctx context.Context, sub *subscription.Subscription) (time.Time, error) {
	plan, err := s.plans.FindByID(ctx, sub.PlanID)
	if err != nil {
		return time.Time{}, err
	}

	from := sub.CurrentPeriodEnd
	if now := time.Now(); from.Before(now) {
		from = now
	}
	switch plan.Interval {
	case subscription.BillingIntervalYearly:
		return from.AddDate(1, 0, 0), nil
	default:
		return from.AddDate(0, 1, 0), nil
	}
}

func (s *LifecycleService) notify(ctx context.Context, sub *subscription.Subscription, notice string) {
	if err := s.mailer.SendSubscriptionNotice(ctx, sub.UserID.String(), notice); err != nil {
		s.logger.Warn("failed to send subscription notice",
			zap.String("subscription_id", sub.ID.String()),
			zap.Error(err),
		)
	}
}
