package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Service represents a priced offering in the shop catalog (xerox, binding, ...).
// Prices are stored in paise; MarshalJSON converts to rupees for API responses.
type Service struct {
	ID               uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	ServiceType      enum.ServiceType       `gorm:"size:50;not null;index" json:"service_type"`
	Name             string                 `gorm:"size:255;not null" json:"name"`
	Price            int64                  `gorm:"not null;default:0;check:price >= 0" json:"-"` // Stored in paise
	PaperSize        *string                `gorm:"size:20" json:"paper_size,omitempty"`
	ColorType        *enum.ColorType        `gorm:"size:20" json:"color_type,omitempty"`
	PaperOrientation *enum.PaperOrientation `gorm:"size:20" json:"paper_orientation,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	DeletedAt        gorm.DeletedAt         `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert paise to rupees for API responses
func (s Service) MarshalJSON() ([]byte, error) {
	type Alias Service
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(s),
		Price: float64(s.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// GetPriceDecimal returns the price in rupees
func (s *Service) GetPriceDecimal() float64 {
	return float64(s.Price) / 100
}

// SetPriceFromDecimal sets the price from a rupee value, rounded to the
// nearest paisa so amounts like 19.99 survive the float conversion intact.
func (s *Service) SetPriceFromDecimal(price float64) {
	s.Price = int64(math.Round(price * 100))
}
