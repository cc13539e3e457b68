package registration

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/radiushq/radius/internal/models"
	"github.com/radiushq/radius/internal/notify"
	"github.com/radiushq/radius/internal/store"
)

const (
	MessageConfirmed = "Registration confirmed!"
	MessagePending   = "Your request has been submitted. You will be notified when approved."
)

// Notifier hands a confirmation email to the background dispatcher.
type Notifier interface {
	Enqueue(msg notify.Message)
}

type Input struct {
	EventID uuid.UUID
	Name    string
	Email   string
	Phone   *string
}

// Workflow decides whether a registration attempt is accepted: the event must
// exist, the email must not already be registered for it, and the event must
// have room. Accepted registrations are confirmed immediately unless the event
// requires approval, in which case they start out pending.
type Workflow struct {
	store    *store.EventStore
	notifier Notifier
	log      zerolog.Logger
}

func NewWorkflow(eventStore *store.EventStore, notifier Notifier, log zerolog.Logger) *Workflow {
	return &Workflow{
		store:    eventStore,
		notifier: notifier,
		log:      log,
	}
}

// Register runs the registration checks in order and inserts the row. The
// returned message distinguishes "pending approval" from "confirmed". The
// confirmation email is queued after the insert and never blocks or fails the
// registration.
func (w *Workflow) Register(ctx context.Context, input Input) (*models.Registration, string, error) {
	event, err := w.store.GetEventByID(ctx, input.EventID)
	if err != nil {
		return nil, "", err
	}

	// Checked ahead of capacity so that re-registering for a full event still
	// reads "already registered". The unique index remains the backstop for
	// submissions racing each other.
	exists, err := w.store.HasRegistration(ctx, event.ID, input.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", store.ErrDuplicateRegistration
	}

	status := models.RegistrationStatusConfirmed
	if event.RequireApproval {
		status = models.RegistrationStatusPending
	}

	registration := &models.Registration{
		EventID: event.ID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Status:  status,
	}
	if err := w.store.InsertRegistration(ctx, registration, event.MaxAttendees); err != nil {
		return nil, "", err
	}

	w.log.Info().
		Str("registration_id", registration.ID.String()).
		Str("event_id", event.ID.String()).
		Str("status", status).
		Msg("registration created")

	w.notifier.Enqueue(notify.Message{
		ToEmail:       registration.Email,
		AttendeeName:  registration.Name,
		EventTitle:    event.Title,
		EventDate:     event.Date,
		EventLocation: event.Location,
		EventSlug:     event.Slug,
		Status:        status,
	})

	message := MessageConfirmed
	if status == models.RegistrationStatusPending {
		message = MessagePending
	}
	return registration, message, nil
}
