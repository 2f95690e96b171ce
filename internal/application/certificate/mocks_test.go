package certificate

import (
	"context"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/certificate"
	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCertificateRepository is a mock implementation of certificate.Repository
type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) FindBySerial(ctx context.Context, serial string) (*certificate.Certificate, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certificate.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindByUserAndAchievement(ctx context.Context, userID, achievementID uuid.UUID, certType catalog.CertificateType) (*certificate.Certificate, error) {
	args := m.Called(ctx, userID, achievementID, certType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certificate.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]certificate.Certificate, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]certificate.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindOrCreate(ctx context.Context, candidate *certificate.Certificate) (*certificate.Certificate, bool, error) {
	args := m.Called(ctx, candidate)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*certificate.Certificate), args.Bool(1), args.Error(2)
}

// MockCompletionOracle is a mock implementation of certificate.CompletionOracle
type MockCompletionOracle struct {
	mock.Mock
}

func (m *MockCompletionOracle) IsComplete(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, achievementID)
	return args.Bool(0), args.Error(1)
}

// MockEntitlementOracle is a mock implementation of certificate.EntitlementOracle
type MockEntitlementOracle struct {
	mock.Mock
}

func (m *MockEntitlementOracle) HasPurchased(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEntitlementOracle) HasAccess(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEntitlementOracle) CurrentSubscriptionCovers(ctx context.Context, userID uuid.UUID, certType catalog.CertificateType) (bool, error) {
	args := m.Called(ctx, userID, certType)
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

// MockProgressRepository is a mock implementation of catalog.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) MarkCompleted(ctx context.Context, completion *catalog.LessonCompletion) error {
	args := m.Called(ctx, completion)
	return args.Error(0)
}

func (m *MockProgressRepository) CountCompleted(ctx context.Context, userID, courseID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Int(0), args.Error(1)
}

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

// MockEnrollmentRepository is a mock implementation of commerce.EnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*commerce.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]commerce.Enrollment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]commerce.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) Upsert(ctx context.Context, enrollment *commerce.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

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

// MockHolderDirectory is a mock implementation of HolderDirectory
type MockHolderDirectory struct {
	mock.Mock
}

func (m *MockHolderDirectory) DisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
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
