package domain

import (
	"context"
	"time"
)

// Booking records an attendee's spot at an event. EventID is not enforced as a
// foreign key; Slug is a denormalized copy of the event's slug.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBooking creates a new Booking. ID is typically set by the repository on create.
func NewBooking(eventID, slug, email string, createdAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Slug:      slug,
		Email:     email,
		CreatedAt: createdAt,
	}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// BookingRequest is what a client submits to book a spot.
type BookingRequest struct {
	EventID string
	Slug    string
	Email   string
}

// BookingConfirmation bundles a stored booking with the ticket issued for it.
type BookingConfirmation struct {
	Booking *Booking `json:"booking"`
	Ticket  string   `json:"ticket"`
}

// Ticket is the verified content of a booking ticket.
// swagger:model Ticket
type Ticket struct {
	BookingID string    `json:"booking_id"`
	EventID   string    `json:"event_id"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TicketIssuer signs and verifies booking tickets.
type TicketIssuer interface {
	Issue(b *Booking) (string, error)
	Verify(token string) (*Ticket, error)
}

// BookingService defines booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, req BookingRequest) (*BookingConfirmation, error)
	CountBookings(ctx context.Context, slug string) (int, error)
	VerifyTicket(ctx context.Context, token string) (*Ticket, error)
}
