package catalog

import (
	"strings"

	"github.com/edustack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CertificateType identifies the kind of certificate a course awards on completion
type CertificateType string

const (
	CertificateTypeCourse       CertificateType = "course"
	CertificateTypeLearningPath CertificateType = "learning_path"
)

// IsValid checks if the certificate type is known
func (t CertificateType) IsValid() bool {
	return t == CertificateTypeCourse || t == CertificateTypeLearningPath
}

// Course is a sellable learning product. SeatsRemaining is nil for courses
// without enrollment caps; when set it is only ever changed through the
// guarded decrement in the fulfillment transaction.
type Course struct {
	shared.BaseAggregateRoot
	Title           string          `gorm:"size:255;not null"`
	Slug            string          `gorm:"size:255;not null;uniqueIndex"`
	Description     string          `gorm:"type:text"`
	Price           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency        string          `gorm:"size:3;not null;default:'USD'"`
	SeatsRemaining  *int            `gorm:"default:null"`
	LessonCount     int             `gorm:"not null;default:0"`
	CertificateType CertificateType `gorm:"size:32;not null;default:'course'"`
	Published       bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Course) TableName() string {
	return "courses"
}

// NewCourse creates a new course
func NewCourse(title, slug string, price decimal.Decimal, currency string) (*Course, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Course title cannot be empty")
	}
	if strings.TrimSpace(slug) == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Course slug cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Course price cannot be negative")
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter code")
	}

	return &Course{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Slug:              slug,
		Price:             price,
		Currency:          strings.ToUpper(currency),
		CertificateType:   CertificateTypeCourse,
	}, nil
}

// TracksSeats reports whether the course has a limited number of seats
func (c *Course) TracksSeats() bool {
	return c.SeatsRemaining != nil
}

// SetSeatLimit caps enrollment at the given number of remaining seats
func (c *Course) SetSeatLimit(seats int) error {
	if seats < 0 {
		return shared.NewDomainError("INVALID_SEATS", "Seat limit cannot be negative")
	}
	c.SeatsRemaining = &seats
	return nil
}

// ClearSeatLimit removes the enrollment cap
func (c *Course) ClearSeatLimit() {
	c.SeatsRemaining = nil
}

// IsFree reports whether the course costs nothing
func (c *Course) IsFree() bool {
	return c.Price.IsZero()
}

// Publish makes the course purchasable
func (c *Course) Publish() {
	c.Published = true
}

// Unpublish withdraws the course from sale
func (c *Course) Unpublish() {
	c.Published = false
}
