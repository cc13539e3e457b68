package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusPending   = "pending"
	RegistrationStatusCancelled = "cancelled"
)

// Registration holds one attendee's signup for one event. At most one
// registration per email per event, enforced by the composite unique index.
type Registration struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_email" json:"event_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;uniqueIndex:idx_registrations_event_email" json:"email"`
	Phone     *string   `json:"phone"`
	Status    string    `gorm:"not null;default:'confirmed'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (registration *Registration) BeforeCreate(tx *gorm.DB) (err error) {
	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}
	return
}
