package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quote struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	ServiceType string   `gorm:"size:100;not null" json:"service_type"`
	Description string   `gorm:"size:2000;not null" json:"description"`
	Budget      *float64 `json:"budget"`

	Status     string `gorm:"size:20;default:'pending'" json:"status"`
	AdminNotes string `gorm:"size:2000" json:"admin_notes"`

	// Weak reference to the submitting user. Nil for guest submissions.
	UserID *string `gorm:"type:uuid;index" json:"user_id"`
	User   *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
