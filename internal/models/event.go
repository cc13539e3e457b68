package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
)

type Event struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title           string     `gorm:"not null" json:"title"`
	Description     *string    `json:"description"`
	EventType       string     `gorm:"not null;default:'event'" json:"event_type"`
	Date            time.Time  `gorm:"not null;index" json:"date"`
	EndDate         *time.Time `json:"end_date"`
	Location        *string    `json:"location"`
	IsVirtual       bool       `gorm:"not null;default:false" json:"is_virtual"`
	VirtualLink     *string    `json:"virtual_link"`
	ImageURL        *string    `json:"image_url"`
	MaxAttendees    *int       `json:"max_attendees"`
	IsFeatured      bool       `gorm:"not null;default:false" json:"is_featured"`
	Status          string     `gorm:"not null;default:'draft'" json:"status"`
	Slug            string     `gorm:"uniqueIndex;not null" json:"slug"`
	ThemeStyle      string     `gorm:"not null;default:'minimal'" json:"theme_style"`
	ThemeColor      string     `gorm:"not null;default:'gray'" json:"theme_color"`
	ThemeFont       string     `gorm:"not null;default:'sans'" json:"theme_font"`
	ThemeMode       string     `gorm:"not null;default:'light'" json:"theme_mode"`
	RequireApproval bool       `gorm:"not null;default:false" json:"require_approval"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Registrations []Registration `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.EventType == "" {
		event.EventType = "event"
	}
	if event.Status == "" {
		event.Status = EventStatusDraft
	}
	if event.ThemeStyle == "" {
		event.ThemeStyle = "minimal"
	}
	if event.ThemeColor == "" {
		event.ThemeColor = "gray"
	}
	if event.ThemeFont == "" {
		event.ThemeFont = "sans"
	}
	if event.ThemeMode == "" {
		event.ThemeMode = "light"
	}
	return
}
