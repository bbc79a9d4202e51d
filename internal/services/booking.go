package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"devevents/internal/domain"

	"github.com/go-playground/validator/v10"
)

type bookingInput struct {
	Slug  string `validate:"required"`
	Email string `validate:"required,email"`
}

type bookingService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	tickets        domain.TicketIssuer
	emailService   domain.EmailService
	logger         *slog.Logger
	validate       *validator.Validate
	baseURL        string
	contextTimeout time.Duration
	now            func() time.Time
}

// NewBookingService returns a BookingService. baseURL is the public site root used for
// links in confirmation emails.
func NewBookingService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	tickets domain.TicketIssuer,
	emailService domain.EmailService,
	logger *slog.Logger,
	baseURL string,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		tickets:        tickets,
		emailService:   emailService,
		logger:         logger,
		validate:       validator.New(),
		baseURL:        strings.TrimRight(baseURL, "/"),
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.BookingConfirmation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug, ok := domain.NormalizeSlug(req.Slug)
	in := bookingInput{Slug: slug, Email: strings.TrimSpace(req.Email)}
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Field() == "Email" {
			return nil, domain.NewValidationError("A valid email is required")
		}
		return nil, domain.NewValidationError("Slug is required")
	}
	if !ok {
		return nil, domain.NewValidationError(domain.InvalidSlugMessage)
	}

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	if id := strings.TrimSpace(req.EventID); id != "" && id != event.ID {
		return nil, fmt.Errorf("event id does not match slug %q: %w", slug, domain.ErrInvalidInput)
	}

	booking := domain.NewBooking(event.ID, event.Slug, in.Email, s.now().UTC())
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	ticket, err := s.tickets.Issue(booking)
	if err != nil {
		return nil, fmt.Errorf("issue ticket: %w", err)
	}

	data := &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventDate:  event.Date,
		EventTime:  event.Time,
		Venue:      event.Venue,
		EventURL:   s.baseURL + "/events/" + event.Slug,
		Ticket:     ticket,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.ErrorContext(ctx, "booking confirmation email failed", "booking_id", booking.ID, "err", err)
	}

	return &domain.BookingConfirmation{Booking: booking, Ticket: ticket}, nil
}

func (s *bookingService) CountBookings(ctx context.Context, slug string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get event by slug: %w", err)
	}
	n, err := s.bookingRepo.CountByEventID(ctx, event.ID)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

func (s *bookingService) VerifyTicket(ctx context.Context, token string) (*domain.Ticket, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.NewValidationError("Ticket token is required")
	}
	t, err := s.tickets.Verify(token)
	if err != nil {
		return nil, domain.NewValidationError("Ticket is invalid or expired")
	}
	return t, nil
}
