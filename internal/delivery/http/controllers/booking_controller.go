package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"devevents/internal/delivery/http/helpers"
	"devevents/internal/domain"
)

// CreateBookingRequest is the request body for POST /api/bookings.
type CreateBookingRequest struct {
	EventID string `json:"event_id"`
	Slug    string `json:"slug"`
	Email   string `json:"email"`
}

// BookingResponse is the body returned for a created booking.
type BookingResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
	Ticket  string          `json:"ticket"`
}

// BookingCountResponse is the body for GET /api/events/{slug}/bookings/count.
type BookingCountResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// TicketResponse is the body for a verified ticket.
type TicketResponse struct {
	Message string         `json:"message"`
	Ticket  *domain.Ticket `json:"ticket"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{Logger: logger, Service: svc}
}

// CreateBooking godoc
// @Summary Book a spot at an event
// @Description Stores a booking for the event identified by slug, emails a confirmation and returns a signed ticket. event_id is optional; when given it must match the slug's event.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Booking"
// @Success 201 {object} controllers.BookingResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /api/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	conf, err := c.Service.CreateBooking(r.Context(), domain.BookingRequest{
		EventID: req.EventID,
		Slug:    req.Slug,
		Email:   req.Email,
	})
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			helpers.WriteJSONError(w, http.StatusBadRequest, ve.Message)
		case errors.Is(err, domain.ErrNotFound):
			slug, _ := domain.NormalizeSlug(req.Slug)
			helpers.WriteJSONError(w, http.StatusNotFound, fmt.Sprintf("Event with slug '%s' not found", slug))
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, "event_id does not match the event for this slug")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONFailure(w, http.StatusInternalServerError, "Booking failed", err)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, BookingResponse{
		Message: "Booking created successfully",
		Booking: conf.Booking,
		Ticket:  conf.Ticket,
	})
}

// CountBookings godoc
// @Summary Count bookings for an event
// @Tags bookings
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.BookingCountResponse
// @Failure 400 {object} helpers.MessageResponse
// @Failure 404 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /api/events/{slug}/bookings/count [get]
func (c *BookingController) CountBookings(w http.ResponseWriter, r *http.Request) {
	slug, ok := helpers.SlugFromPath(w, r)
	if !ok {
		return
	}
	n, err := c.Service.CountBookings(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, fmt.Sprintf("Event with slug '%s' not found", slug))
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONFailure(w, http.StatusInternalServerError, "Failed to count bookings", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, BookingCountResponse{Message: "Booking count fetched successfully", Count: n})
}

// VerifyTicket godoc
// @Summary Verify a booking ticket
// @Tags bookings
// @Produce json
// @Param token query string true "Ticket token"
// @Success 200 {object} controllers.TicketResponse
// @Failure 400 {object} helpers.MessageResponse
// @Router /api/tickets/verify [get]
func (c *BookingController) VerifyTicket(w http.ResponseWriter, r *http.Request) {
	t, err := c.Service.VerifyTicket(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			helpers.WriteJSONError(w, http.StatusBadRequest, ve.Message)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONFailure(w, http.StatusInternalServerError, "Failed to verify ticket", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, TicketResponse{Message: "Ticket is valid", Ticket: t})
}
