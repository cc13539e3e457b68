package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/radiushq/radius/internal/helpers"
	"github.com/radiushq/radius/internal/models"
	"github.com/radiushq/radius/internal/store"
)

// uniqueViolationCode is the code the backend reports for a duplicate slug;
// the admin UI keys its "slug already exists" toast off it.
const uniqueViolationCode = "23505"

type EventHandler struct {
	store *store.EventStore
	log   zerolog.Logger
}

func NewEventHandler(eventStore *store.EventStore, log zerolog.Logger) *EventHandler {
	return &EventHandler{store: eventStore, log: log}
}

type CreateEventRequest struct {
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	EventType       string     `json:"event_type"`
	Date            *time.Time `json:"date"`
	EndDate         *time.Time `json:"end_date"`
	Location        *string    `json:"location"`
	IsVirtual       bool       `json:"is_virtual"`
	VirtualLink     *string    `json:"virtual_link"`
	ImageURL        *string    `json:"image_url"`
	MaxAttendees    *int       `json:"max_attendees"`
	IsFeatured      bool       `json:"is_featured"`
	Status          string     `json:"status"`
	Slug            string     `json:"slug"`
	ThemeStyle      string     `json:"theme_style"`
	ThemeColor      string     `json:"theme_color"`
	ThemeFont       string     `json:"theme_font"`
	ThemeMode       string     `json:"theme_mode"`
	RequireApproval bool       `json:"require_approval"`
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	// Normalizing guarantees the stored slug is lowercase and URL-safe even
	// when the client sends a raw title as the slug; valid slugs pass through
	// unchanged.
	slug := helpers.GenerateSlug(req.Slug)
	if req.Title == "" || req.Date == nil || slug == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields: title, date, or slug.")
		return
	}

	event := models.Event{
		Title:           req.Title,
		Description:     req.Description,
		EventType:       req.EventType,
		Date:            *req.Date,
		EndDate:         req.EndDate,
		Location:        req.Location,
		IsVirtual:       req.IsVirtual,
		VirtualLink:     req.VirtualLink,
		ImageURL:        req.ImageURL,
		MaxAttendees:    req.MaxAttendees,
		IsFeatured:      req.IsFeatured,
		Status:          req.Status,
		Slug:            slug,
		ThemeStyle:      req.ThemeStyle,
		ThemeColor:      req.ThemeColor,
		ThemeFont:       req.ThemeFont,
		ThemeMode:       req.ThemeMode,
		RequireApproval: req.RequireApproval,
	}

	if err := h.store.InsertEvent(c.Request.Context(), &event); err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			helpers.RespondWithErrorCode(c, http.StatusInternalServerError,
				"An event with this slug already exists.", uniqueViolationCode)
			return
		}
		h.log.Error().Err(err).Msg("failed to create event")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"event": event,
	})
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	var (
		events []models.Event
		err    error
	)
	if c.Query("upcoming") == "true" {
		events, err = h.store.ListPublishedUpcoming(c.Request.Context(), time.Now())
	} else {
		events, err = h.store.ListEvents(c.Request.Context())
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list events")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, gin.H{
		"events": events,
	})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	slug := c.Param("slug")

	event, err := h.store.GetEventBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found")
			return
		}
		h.log.Error().Err(err).Msg("failed to get event")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	count, err := h.store.CountRegistrations(c.Request.Context(), event.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to count registrations")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event":          event,
		"attendee_count": count,
	})
}

// ListEventRegistrations is the organizer's attendee list for one event,
// oldest registration first.
func (h *EventHandler) ListEventRegistrations(c *gin.Context) {
	slug := c.Param("slug")

	event, err := h.store.GetEventBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found")
			return
		}
		h.log.Error().Err(err).Msg("failed to get event")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	registrations, err := h.store.ListRegistrations(c.Request.Context(), event.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list registrations")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving registrations.")
		return
	}

	if registrations == nil {
		registrations = []models.Registration{}
	}
	c.JSON(http.StatusOK, gin.H{
		"registrations": registrations,
	})
}
