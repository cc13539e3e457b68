package store

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/radiushq/radius/internal/models"
)

func newTestStore(t *testing.T) *EventStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Event{}, &models.Registration{}))
	return NewEventStore(db)
}

func makeEvent(title, slug, status string, date time.Time) *models.Event {
	return &models.Event{
		Title:  title,
		Slug:   slug,
		Status: status,
		Date:   date,
	}
}

func TestInsertAndGetEventBySlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	date := time.Now().Add(48 * time.Hour)
	event := makeEvent("Launch Party", "launch-party", models.EventStatusPublished, date)
	require.NoError(t, s.InsertEvent(ctx, event))
	assert.NotEqual(t, uuid.Nil, event.ID)

	got, err := s.GetEventBySlug(ctx, "launch-party")
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, "Launch Party", got.Title)
	assert.Equal(t, models.EventStatusPublished, got.Status)
	assert.WithinDuration(t, date, got.Date, time.Second)
}

func TestGetEventBySlugNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetEventBySlug(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetEventByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetEventByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestInsertEventDuplicateSlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := makeEvent("First", "taken", models.EventStatusDraft, time.Now())
	require.NoError(t, s.InsertEvent(ctx, first))

	second := makeEvent("Second", "taken", models.EventStatusDraft, time.Now())
	err := s.InsertEvent(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestListEventsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, s.InsertEvent(ctx, makeEvent("Old", "old", models.EventStatusPublished, now.Add(-24*time.Hour))))
	require.NoError(t, s.InsertEvent(ctx, makeEvent("New", "new", models.EventStatusDraft, now.Add(72*time.Hour))))
	require.NoError(t, s.InsertEvent(ctx, makeEvent("Mid", "mid", models.EventStatusPublished, now.Add(24*time.Hour))))

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "new", events[0].Slug)
	assert.Equal(t, "mid", events[1].Slug)
	assert.Equal(t, "old", events[2].Slug)
}

func TestListPublishedUpcoming(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, s.InsertEvent(ctx, makeEvent("Past", "past", models.EventStatusPublished, now.Add(-24*time.Hour))))
	require.NoError(t, s.InsertEvent(ctx, makeEvent("Draft", "draft-event", models.EventStatusDraft, now.Add(24*time.Hour))))
	require.NoError(t, s.InsertEvent(ctx, makeEvent("Soon", "soon", models.EventStatusPublished, now.Add(24*time.Hour))))
	require.NoError(t, s.InsertEvent(ctx, makeEvent("Later", "later", models.EventStatusPublished, now.Add(48*time.Hour))))

	events, err := s.ListPublishedUpcoming(ctx, now)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "soon", events[0].Slug)
	assert.Equal(t, "later", events[1].Slug)
}

func TestCountRegistrationsAllStatuses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	event := makeEvent("Counted", "counted", models.EventStatusPublished, time.Now())
	require.NoError(t, s.InsertEvent(ctx, event))

	statuses := []string{
		models.RegistrationStatusConfirmed,
		models.RegistrationStatusPending,
		models.RegistrationStatusCancelled,
	}
	for i, status := range statuses {
		reg := &models.Registration{
			EventID: event.ID,
			Name:    "Attendee",
			Email:   statuses[i] + "@example.com",
			Status:  status,
		}
		require.NoError(t, s.InsertRegistration(ctx, reg, nil))
	}

	count, err := s.CountRegistrations(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestInsertRegistrationDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	event := makeEvent("Dup", "dup", models.EventStatusPublished, time.Now())
	require.NoError(t, s.InsertEvent(ctx, event))

	first := &models.Registration{EventID: event.ID, Name: "A", Email: "a@x.com", Status: models.RegistrationStatusConfirmed}
	require.NoError(t, s.InsertRegistration(ctx, first, nil))

	second := &models.Registration{EventID: event.ID, Name: "A again", Email: "a@x.com", Status: models.RegistrationStatusConfirmed}
	err := s.InsertRegistration(ctx, second, nil)
	assert.ErrorIs(t, err, ErrDuplicateRegistration)

	// First record is unaffected.
	count, err := s.CountRegistrations(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestInsertRegistrationDuplicateEmailWithCapacity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	capacity := 10
	event := makeEvent("Dup Cap", "dup-cap", models.EventStatusPublished, time.Now())
	event.MaxAttendees = &capacity
	require.NoError(t, s.InsertEvent(ctx, event))

	first := &models.Registration{EventID: event.ID, Name: "A", Email: "a@x.com", Status: models.RegistrationStatusConfirmed}
	require.NoError(t, s.InsertRegistration(ctx, first, event.MaxAttendees))

	second := &models.Registration{EventID: event.ID, Name: "A again", Email: "a@x.com", Status: models.RegistrationStatusConfirmed}
	err := s.InsertRegistration(ctx, second, event.MaxAttendees)
	assert.ErrorIs(t, err, ErrDuplicateRegistration)
}

func TestInsertRegistrationCapacityExceeded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	capacity := 2
	event := makeEvent("Small", "small", models.EventStatusPublished, time.Now())
	event.MaxAttendees = &capacity
	require.NoError(t, s.InsertEvent(ctx, event))

	for _, email := range []string{"one@x.com", "two@x.com"} {
		reg := &models.Registration{EventID: event.ID, Name: "N", Email: email, Status: models.RegistrationStatusConfirmed}
		require.NoError(t, s.InsertRegistration(ctx, reg, event.MaxAttendees))
	}

	third := &models.Registration{EventID: event.ID, Name: "N", Email: "three@x.com", Status: models.RegistrationStatusConfirmed}
	err := s.InsertRegistration(ctx, third, event.MaxAttendees)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	count, err := s.CountRegistrations(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestInsertRegistrationUnlimitedCapacity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	event := makeEvent("Open", "open", models.EventStatusPublished, time.Now())
	require.NoError(t, s.InsertEvent(ctx, event))

	for i := 0; i < 25; i++ {
		reg := &models.Registration{
			EventID: event.ID,
			Name:    "N",
			Email:   uuid.NewString() + "@example.com",
			Status:  models.RegistrationStatusConfirmed,
		}
		require.NoError(t, s.InsertRegistration(ctx, reg, nil))
	}

	count, err := s.CountRegistrations(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), count)
}

func TestListRegistrationsOldestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	event := makeEvent("Ordered", "ordered", models.EventStatusPublished, time.Now())
	require.NoError(t, s.InsertEvent(ctx, event))

	base := time.Now().Add(-time.Hour)
	for i, email := range []string{"first@x.com", "second@x.com", "third@x.com"} {
		reg := &models.Registration{
			EventID:   event.ID,
			Name:      "N",
			Email:     email,
			Status:    models.RegistrationStatusConfirmed,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.InsertRegistration(ctx, reg, nil))
	}

	regs, err := s.ListRegistrations(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, regs, 3)
	assert.Equal(t, "first@x.com", regs[0].Email)
	assert.Equal(t, "third@x.com", regs[2].Email)
}
