package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction represents one recorded sale in the day book. Monetary columns
// are stored in paise; MarshalJSON converts to rupees for API responses.
// A transaction is immutable once recorded; the only allowed mutation is a
// full delete, which cascades to its items.
type Transaction struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	TxDate        time.Time          `gorm:"type:date;not null;index" json:"date"`
	TxTime        string             `gorm:"size:8;not null" json:"time"` // HH:MM:SS, same-day ordering
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null;index" json:"payment_method"`
	Quantity      int                `gorm:"not null" json:"quantity"`
	Cost          int64              `gorm:"not null" json:"-"` // Gross, stored in paise
	Discount      int64              `gorm:"not null;default:0" json:"-"`
	FinalCost     int64              `gorm:"not null" json:"-"`
	ServiceID     *uuid.UUID         `gorm:"type:uuid;index" json:"service_id,omitempty"`
	ServiceType   *enum.ServiceType  `gorm:"size:50;index" json:"service_type,omitempty"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CustomerName  *string            `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone *string            `gorm:"size:50" json:"customer_phone,omitempty"`
	MultiService  bool               `gorm:"default:false" json:"multi_service"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Service *Service          `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Items   []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to rupees for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		Date      string  `json:"date"`
		Cost      float64 `json:"cost"`
		Discount  float64 `json:"discount"`
		FinalCost float64 `json:"final_cost"`
	}{
		Alias:     Alias(t),
		Date:      t.TxDate.Format("2006-01-02"),
		Cost:      float64(t.Cost) / 100,
		Discount:  float64(t.Discount) / 100,
		FinalCost: float64(t.FinalCost) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// FinalCostFor computes the payable amount for a gross cost and discount.
// The result is floored at zero; a discount larger than the gross never
// produces a negative amount.
func FinalCostFor(cost, discount int64) int64 {
	final := cost - discount
	if final < 0 {
		return 0
	}
	return final
}

// TransactionItem is one service line within a multi-service transaction.
// UnitCost is the catalog price snapshotted at sale time; later catalog price
// changes do not affect recorded items.
type TransactionItem struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ServiceID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"service_id"`
	Quantity      int            `gorm:"not null" json:"quantity"`
	UnitCost      int64          `gorm:"not null" json:"-"` // Price snapshot, paise
	Total         int64          `gorm:"not null" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to rupees for API responses
func (ti TransactionItem) MarshalJSON() ([]byte, error) {
	type Alias TransactionItem
	return json.Marshal(&struct {
		Alias
		UnitCost float64 `json:"unit_cost"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(ti),
		UnitCost: float64(ti.UnitCost) / 100,
		Total:    float64(ti.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction item
func (ti *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if ti.ID == uuid.Nil {
		ti.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}
