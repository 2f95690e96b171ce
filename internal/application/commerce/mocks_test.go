package commerce

import (
	"context"
	"net/http"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/infrastructure/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPurchaseRepository is a mock implementation of commerce.PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByProviderOrderID(ctx context.Context, orderID string) (*commerce.Purchase, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindPendingByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*commerce.Purchase, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]commerce.Purchase, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]commerce.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) HasPaidPurchase(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *commerce.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

// MockFulfillmentRepository is a mock implementation of commerce.FulfillmentRepository
type MockFulfillmentRepository struct {
	mock.Mock
}

func (m *MockFulfillmentRepository) Fulfill(ctx context.Context, purchaseID uuid.UUID, captureID string) (bool, error) {
	args := m.Called(ctx, purchaseID, captureID)
	return args.Bool(0), args.Error(1)
}

// MockCourseRepository is a mock implementation of catalog.CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Course), args.Error(1)
}

func (m *MockCourseRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Course, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Course), args.Error(1)
}

func (m *MockCourseRepository) FindPublished(ctx context.Context, filter shared.Filter) ([]catalog.Course, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Course), args.Get(1).(int64), args.Error(2)
}

func (m *MockCourseRepository) Save(ctx context.Context, course *catalog.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCouponRepository is a mock implementation of commerce.CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (*commerce.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Save(ctx context.Context, coupon *commerce.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
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

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
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
