package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"devevents/internal/delivery/http/helpers"
	"devevents/internal/domain"
	"devevents/internal/intake"
)

// DefaultMaxFormBytes caps multipart intake bodies when no limit is configured.
const DefaultMaxFormBytes int64 = 20 << 20

// EventResponse is the body for single-event responses.
type EventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// EventsResponse is the body for event list responses.
type EventsResponse struct {
	Message string          `json:"message"`
	Events  []*domain.Event `json:"events"`
}

type EventController struct {
	Logger       *slog.Logger
	Service      domain.EventService
	Parser       *intake.Parser
	Calendar     domain.CalendarExporter
	MaxFormBytes int64
}

func NewEventController(logger *slog.Logger, svc domain.EventService, parser *intake.Parser, calendar domain.CalendarExporter, maxFormBytes int64) *EventController {
	if maxFormBytes <= 0 {
		maxFormBytes = DefaultMaxFormBytes
	}
	return &EventController{
		Logger:       logger,
		Service:      svc,
		Parser:       parser,
		Calendar:     calendar,
		MaxFormBytes: maxFormBytes,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Accepts a multipart form. Only title, description, overview, image, venue, location, date, time, mode, audience, agenda, organizer and tags are kept; agenda and tags may repeat. The image part is uploaded under /images/events. Slug, id and timestamps are server-generated.
// @Tags events
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param overview formData string true "Overview"
// @Param image formData file true "Cover image (jpeg, png, webp or gif, max 5MB)"
// @Param venue formData string true "Venue"
// @Param location formData string true "Location"
// @Param date formData string true "Date"
// @Param time formData string true "Time"
// @Param mode formData string true "online, offline or hybrid"
// @Param audience formData string true "Audience"
// @Param agenda formData []string true "Agenda items" collectionFormat(multi)
// @Param organizer formData string true "Organizer"
// @Param tags formData []string true "Tags" collectionFormat(multi)
// @Success 201 {object} controllers.EventResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, c.MaxFormBytes)
	mr, err := r.MultipartReader()
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, intake.ErrInvalidForm.Error())
		return
	}
	rec, err := c.Parser.Parse(ctx, mr)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := c.Service.CreateEvent(ctx, rec.Project())
	if err != nil {
		c.discard(ctx, rec)
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			helpers.WriteJSONError(w, http.StatusBadRequest, ve.Message)
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, intake.ErrInvalidForm.Error())
		default:
			c.Logger.ErrorContext(ctx, "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONFailure(w, http.StatusInternalServerError, "Event creation failed", err)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, EventResponse{Message: "Event created successfully", Event: event})
}

// discard removes an image uploaded for a submission that was not stored.
func (c *EventController) discard(ctx context.Context, rec *intake.Record) {
	if path := rec.UploadedImage(); path != "" {
		if err := rec.Discard(context.WithoutCancel(ctx)); err != nil {
			c.Logger.WarnContext(ctx, "orphaned upload not removed", "image", path, "err", err)
		}
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns every event, most recently created first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventsResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONFailure(w, http.StatusInternalServerError, "Failed to fetch events", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventsResponse{Message: "Events fetched successfully", Events: events})
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Description The slug is trimmed and lowercased before lookup.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /api/events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug, ok := helpers.SlugFromPath(w, r)
	if !ok {
		return
	}
	event, ok := c.lookup(w, r, slug)
	if !ok {
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventResponse{Message: "Event retrieved successfully", Event: event})
}

// GetSimilarEvents godoc
// @Summary List similar events
// @Description Events sharing at least one tag with the given event, excluding it. Lookup failures yield an empty list.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventsResponse
// @Failure 400 {object} helpers.MessageResponse
// @Router /api/events/{slug}/similar [get]
func (c *EventController) GetSimilarEvents(w http.ResponseWriter, r *http.Request) {
	slug, ok := helpers.SlugFromPath(w, r)
	if !ok {
		return
	}
	events := c.Service.GetSimilarEventsBySlug(r.Context(), slug)
	helpers.WriteJSON(w, http.StatusOK, EventsResponse{Message: "Similar events fetched successfully", Events: events})
}

// GetEventCalendar godoc
// @Summary Download an event as iCalendar
// @Tags events
// @Produce text/calendar
// @Param slug path string true "Event slug"
// @Success 200 {string} string "VCALENDAR document"
// @Failure 400 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 422 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /api/events/{slug}/calendar.ics [get]
func (c *EventController) GetEventCalendar(w http.ResponseWriter, r *http.Request) {
	slug, ok := helpers.SlugFromPath(w, r)
	if !ok {
		return
	}
	event, ok := c.lookup(w, r, slug)
	if !ok {
		return
	}
	body, err := c.Calendar.Export(event)
	if err != nil {
		if errors.Is(err, domain.ErrUnschedulable) {
			helpers.WriteJSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONFailure(w, http.StatusInternalServerError, "Failed to export event", err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.ics"`, event.Slug))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// lookup fetches the event for slug, writing the 404 or 500 response itself when it
// cannot.
func (c *EventController) lookup(w http.ResponseWriter, r *http.Request, slug string) (*domain.Event, bool) {
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, fmt.Sprintf("Event with slug '%s' not found", slug))
			return nil, false
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONFailure(w, http.StatusInternalServerError, "Failed to retrieve event", err)
		return nil, false
	}
	return event, true
}
