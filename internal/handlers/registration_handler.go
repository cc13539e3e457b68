package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/radiushq/radius/internal/helpers"
	"github.com/radiushq/radius/internal/registration"
	"github.com/radiushq/radius/internal/store"
)

type RegistrationHandler struct {
	workflow *registration.Workflow
	log      zerolog.Logger
}

func NewRegistrationHandler(workflow *registration.Workflow, log zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{workflow: workflow, log: log}
}

type RegisterRequest struct {
	EventID string  `json:"event_id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
}

func (h *RegistrationHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	if req.EventID == "" || req.Name == "" || req.Email == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields: event_id, name, or email.")
		return
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event_id.")
		return
	}

	created, message, err := h.workflow.Register(c.Request.Context(), registration.Input{
		EventID: eventID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEventNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		case errors.Is(err, store.ErrCapacityExceeded):
			helpers.RespondWithError(c, http.StatusConflict, "This event is at full capacity.")
		case errors.Is(err, store.ErrDuplicateRegistration):
			helpers.RespondWithError(c, http.StatusConflict, "You are already registered for this event.")
		default:
			h.log.Error().Err(err).Msg("failed to register attendee")
			helpers.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"registration": created,
		"message":      message,
	})
}
