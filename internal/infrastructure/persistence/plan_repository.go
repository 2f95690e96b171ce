package persistence

import (
	"context"
	"errors"

	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/domain/subscription"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPlanRepository implements subscription.PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Plan, error) {
	var plan subscription.Plan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindByProviderPlanID finds a plan by its gateway plan identifier
func (r *GormPlanRepository) FindByProviderPlanID(ctx context.Context, providerPlanID string) (*subscription.Plan, error) {
	var plan subscription.Plan
	if err := r.db.WithContext(ctx).First(&plan, "provider_plan_id = ?", providerPlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Save creates or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *subscription.Plan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

var _ subscription.PlanRepository = (*GormPlanRepository)(nil)
