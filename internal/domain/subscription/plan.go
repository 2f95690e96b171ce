package subscription

import (
	"strings"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PlanTier orders plans by the entitlements they grant
type PlanTier string

const (
	PlanTierBasic PlanTier = "basic"
	PlanTierPro   PlanTier = "pro"
)

// BillingInterval is the recurring charge cadence
type BillingInterval string

const (
	BillingIntervalMonthly BillingInterval = "monthly"
	BillingIntervalYearly  BillingInterval = "yearly"
)

// Plan describes a subscription product at the gateway
type Plan struct {
	shared.BaseEntity
	Name             string          `gorm:"size:128;not null"`
	Tier             PlanTier        `gorm:"size:16;not null"`
	Interval         BillingInterval `gorm:"size:16;not null"`
	Price            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency         string          `gorm:"size:3;not null"`
	ProviderPlanID   string          `gorm:"size:64;uniqueIndex"`
	CertificateTypes string          `gorm:"size:255"` // comma-separated certificate types the tier covers
}

// TableName returns the table name for GORM
func (Plan) TableName() string {
	return "plans"
}

// NewPlan creates a subscription plan
func NewPlan(name string, tier PlanTier, interval BillingInterval, price decimal.Decimal, currency string) (*Plan, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PLAN_NAME", "Plan name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Plan price cannot be negative")
	}
	return &Plan{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Tier:       tier,
		Interval:   interval,
		Price:      price,
		Currency:   strings.ToUpper(currency),
	}, nil
}

// IncludesCertificates reports whether the plan tier grants certificates of
// the given achievement type
func (p *Plan) IncludesCertificates(certType catalog.CertificateType) bool {
	for _, t := range strings.Split(p.CertificateTypes, ",") {
		if strings.TrimSpace(t) == string(certType) {
			return true
		}
	}
	return false
}

// GrantCertificates adds a certificate type to the plan's entitlements
func (p *Plan) GrantCertificates(certType catalog.CertificateType) {
	if p.IncludesCertificates(certType) {
		return
	}
	if p.CertificateTypes == "" {
		p.CertificateTypes = string(certType)
		return
	}
	p.CertificateTypes += "," + string(certType)
}
