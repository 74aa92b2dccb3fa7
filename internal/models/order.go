package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ServiceID string  `gorm:"type:uuid;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	Address         string `gorm:"size:500" json:"address"`
	SpecialRequests string `gorm:"size:2000" json:"special_requests"`

	Quantity int `gorm:"not null" json:"quantity"`

	// Snapshot of service.Price * Quantity taken at creation. Never
	// recomputed, never accepted from the client.
	TotalAmount float64 `gorm:"not null" json:"total_amount"`

	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'unpaid'" json:"payment_status"`

	// Set once by the payment bridge; attach is a conditional update so a
	// second intent for the same order is rejected, not overwritten.
	PaymentIntentID *string `gorm:"size:100" json:"payment_intent_id"`

	// Weak reference to the submitting user. Nil for guest checkout.
	UserID *string `gorm:"type:uuid;index" json:"user_id"`
	User   *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
