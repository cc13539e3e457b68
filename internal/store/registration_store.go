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

// CountRegistrations counts every registration row for the event, regardless
// of status. A cancelled row still holds its slot for capacity accounting.
func (s *EventStore) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

func (s *EventStore) HasRegistration(ctx context.Context, eventID uuid.UUID, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ? AND email = ?", eventID, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return count > 0, nil
}

// ListRegistrations returns the event's registrations oldest-first, for the
// organizer attendee view.
func (s *EventStore) ListRegistrations(ctx context.Context, eventID uuid.UUID) ([]models.Registration, error) {
	var registrations []models.Registration
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&registrations).Error
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}

// InsertRegistration writes the registration, enforcing capacity in the same
// statement when the event has one. The insert only lands if the current row
// count for the event is still below capacity, so two submissions racing for
// the last slot cannot both get in. A unique-index violation on (event, email)
// surfaces as ErrDuplicateRegistration.
func (s *EventStore) InsertRegistration(ctx context.Context, registration *models.Registration, capacity *int) error {
	if capacity == nil {
		if err := s.db.WithContext(ctx).Create(registration).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateRegistration
			}
			return fmt.Errorf("insert registration: %w", err)
		}
		return nil
	}

	// Raw insert bypasses the BeforeCreate hook, so fill the generated fields
	// here.
	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}
	now := time.Now().UTC()
	registration.CreatedAt = now
	registration.UpdatedAt = now

	result := s.db.WithContext(ctx).Exec(`
		INSERT INTO registrations (id, event_id, name, email, phone, status, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?
		WHERE (SELECT COUNT(*) FROM registrations WHERE event_id = ?) < ?`,
		registration.ID, registration.EventID, registration.Name, registration.Email,
		registration.Phone, registration.Status, registration.CreatedAt, registration.UpdatedAt,
		registration.EventID, *capacity,
	)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRegistration
		}
		return fmt.Errorf("insert registration: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCapacityExceeded
	}
	return nil
}
