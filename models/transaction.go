package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TransactionServiceLine is one billed service on a point-of-sale record,
// possibly carrying a per-line price adjustment.
type TransactionServiceLine struct {
	ServiceID       string  `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	Price           float64 `json:"price"`
	AdjustedPrice   float64 `json:"adjustedPrice"`
	AdjustmentNotes string  `json:"adjustmentNotes"`
}

type TransactionServiceLines []TransactionServiceLine

func (l TransactionServiceLines) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]TransactionServiceLine{})
	}
	return json.Marshal(l)
}

func (l *TransactionServiceLines) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &l)
}

// TransactionProductLine is one purchased product on a point-of-sale record.
type TransactionProductLine struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

type TransactionProductLines []TransactionProductLine

func (l TransactionProductLines) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]TransactionProductLine{})
	}
	return json.Marshal(l)
}

func (l *TransactionProductLines) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &l)
}

// Transaction is an immutable point-of-sale record, read-only here.
type Transaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID      string    `gorm:"index" json:"clientId"`
	BranchID      string    `gorm:"index" json:"branchId"`
	PaymentMethod string    `gorm:"type:varchar(20)" json:"paymentMethod"`

	Services TransactionServiceLines `gorm:"type:jsonb;default:'[]'" json:"services"`
	Products TransactionProductLines `gorm:"type:jsonb;default:'[]'" json:"products"`

	Subtotal float64 `gorm:"type:decimal(10,2)" json:"subtotal"`
	Discount float64 `gorm:"type:decimal(10,2)" json:"discount"`
	Total    float64 `gorm:"type:decimal(10,2)" json:"total"`

	CreatedAt time.Time `json:"createdAt"`
}
