package subscription

import (
	"context"
	"net/http"

	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/subscription"
	"github.com/edustack/backend/internal/infrastructure/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockSubscriptionRepository is a mock implementation of subscription.Repository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByProviderSubscriptionID(ctx context.Context, providerID string) (*subscription.Subscription, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindCurrentByUser(ctx context.Context, userID uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindNonTerminalByUser(ctx context.Context, userID uuid.UUID) ([]subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) SaveActivationReplacing(ctx context.Context, activated *subscription.Subscription, displaced []subscription.Subscription) error {
	args := m.Called(ctx, activated, displaced)
	return args.Error(0)
}

// MockPlanRepository is a mock implementation of subscription.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindByProviderPlanID(ctx context.Context, providerPlanID string) (*subscription.Plan, error) {
	args := m.Called(ctx, providerPlanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Plan), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *subscription.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

// MockActivityLogRepository is a mock implementation of commerce.ActivityLogRepository
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Create(ctx context.Context, entry *commerce.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityLogRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]commerce.ActivityLog, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]commerce.ActivityLog), args.Error(1)
}

// MockGateway is a mock implementation of payment.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, referenceID, description string) (*payment.Order, error) {
	args := m.Called(ctx, amount, currency, referenceID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}

func (m *MockGateway) CaptureOrder(ctx context.Context, orderID string) (*payment.Capture, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Capture), args.Error(1)
}

func (m *MockGateway) CancelSubscription(ctx context.Context, providerSubscriptionID, reason string) error {
	args := m.Called(ctx, providerSubscriptionID, reason)
	return args.Error(0)
}

func (m *MockGateway) VerifyWebhookSignature(ctx context.Context, req *http.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockMailer is a mock implementation of notification.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPurchaseReceipt(ctx context.Context, userID string, courseTitle string, amount decimal.Decimal, currency string) error {
	args := m.Called(ctx, userID, courseTitle, amount, currency)
	return args.Error(0)
}

func (m *MockMailer) SendCertificateIssued(ctx context.Context, userID string, achievementTitle, serial string) error {
	args := m.Called(ctx, userID, achievementTitle, serial)
	return args.Error(0)
}

func (m *MockMailer) SendSubscriptionNotice(ctx context.Context, userID string, notice string) error {
	args := m.Called(ctx, userID, notice)
	return args.Error(0)
}
