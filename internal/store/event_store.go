package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radiushq/radius/internal/models"
)

// EventStore is the query layer over events and registrations. Every call is a
// direct query against the backing database; there is no caching.
type EventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &event, nil
}

func (s *EventStore) GetEventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return &event, nil
}

// ListEvents returns every event newest-first, the ordering the admin
// dashboard expects.
func (s *EventStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := s.db.WithContext(ctx).Order("date DESC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListPublishedUpcoming returns published events starting at or after now,
// soonest first. This is the public listing.
func (s *EventStore) ListPublishedUpcoming(ctx context.Context, now time.Time) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Where("status = ? AND date >= ?", models.EventStatusPublished, now).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

func (s *EventStore) InsertEvent(ctx context.Context, event *models.Event) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}
