package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"devevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
	countErr error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if f.err != nil {
		return f.err
	}
	b.ID = fmt.Sprintf("bk-%d", len(f.bookings)+1)
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	n := 0
	for _, b := range f.bookings {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

type fakeTicketIssuer struct {
	issueErr error
	tickets  map[string]*domain.Ticket
}

func newFakeTicketIssuer() *fakeTicketIssuer {
	return &fakeTicketIssuer{tickets: make(map[string]*domain.Ticket)}
}

func (f *fakeTicketIssuer) Issue(b *domain.Booking) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	token := "ticket-" + b.ID
	f.tickets[token] = &domain.Ticket{BookingID: b.ID, EventID: b.EventID, Slug: b.Slug, Email: b.Email}
	return token, nil
}

func (f *fakeTicketIssuer) Verify(token string) (*domain.Ticket, error) {
	if t, ok := f.tickets[token]; ok {
		return t, nil
	}
	return nil, errors.New("token is malformed")
}

// fakeEmailService records the confirmation emails it was asked to send.
type fakeEmailService struct {
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

type bookingFixture struct {
	events   *fakeEventRepo
	bookings *fakeBookingRepo
	tickets  *fakeTicketIssuer
	emails   *fakeEmailService
	svc      domain.BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		events:   newFakeEventRepo(),
		bookings: &fakeBookingRepo{},
		tickets:  newFakeTicketIssuer(),
		emails:   &fakeEmailService{},
	}
	f.events.add(&domain.Event{ID: "ev-1", Slug: "devconf", Title: "DevConf", Date: "2026-11-07", Time: "09:00", Venue: "Main Hall"})
	f.svc = NewBookingService(f.events, f.bookings, f.tickets, f.emails, testLogger, "https://devevents.example/", 5*time.Second)
	return f
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		req         domain.BookingRequest
		setup       func(*bookingFixture)
		wantMsg     string
		wantErrIs   error
		wantBooking bool
	}{
		{
			name:        "success",
			req:         domain.BookingRequest{Slug: "devconf", Email: "ada@example.com"},
			wantBooking: true,
		},
		{
			name:        "slug is normalized",
			req:         domain.BookingRequest{Slug: "  DevConf ", Email: " ada@example.com "},
			wantBooking: true,
		},
		{
			name:        "matching event id",
			req:         domain.BookingRequest{EventID: "ev-1", Slug: "devconf", Email: "ada@example.com"},
			wantBooking: true,
		},
		{
			name:    "missing email",
			req:     domain.BookingRequest{Slug: "devconf"},
			wantMsg: "A valid email is required",
		},
		{
			name:    "malformed email",
			req:     domain.BookingRequest{Slug: "devconf", Email: "not-an-email"},
			wantMsg: "A valid email is required",
		},
		{
			name:    "blank slug and email",
			req:     domain.BookingRequest{Slug: "   ", Email: "  "},
			wantMsg: "Slug is required",
		},
		{
			name:    "missing slug",
			req:     domain.BookingRequest{Email: "ada@example.com"},
			wantMsg: "Slug is required",
		},
		{
			name:    "bad slug",
			req:     domain.BookingRequest{Slug: "dev conf", Email: "ada@example.com"},
			wantMsg: domain.InvalidSlugMessage,
		},
		{
			name:      "unknown event",
			req:       domain.BookingRequest{Slug: "nope", Email: "ada@example.com"},
			wantErrIs: domain.ErrNotFound,
		},
		{
			name:      "event id disagrees with slug",
			req:       domain.BookingRequest{EventID: "ev-9", Slug: "devconf", Email: "ada@example.com"},
			wantErrIs: domain.ErrInvalidInput,
		},
		{
			name: "email failure does not fail booking",
			req:  domain.BookingRequest{Slug: "devconf", Email: "ada@example.com"},
			setup: func(f *bookingFixture) {
				f.emails.err = errors.New("ses down")
			},
			wantBooking: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			if tt.setup != nil {
				tt.setup(f)
			}
			got, err := f.svc.CreateBooking(ctx, tt.req)
			if tt.wantMsg != "" {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantMsg, ve.Message)
				assert.Empty(t, f.bookings.bookings)
				return
			}
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				assert.Empty(t, f.bookings.bookings)
				return
			}
			require.NoError(t, err)
			require.True(t, tt.wantBooking)
			assert.Equal(t, "bk-1", got.Booking.ID)
			assert.Equal(t, "ev-1", got.Booking.EventID)
			assert.Equal(t, "devconf", got.Booking.Slug)
			assert.Equal(t, "ada@example.com", got.Booking.Email)
			assert.Equal(t, "ticket-bk-1", got.Ticket)
			if f.emails.err == nil {
				require.Len(t, f.emails.sent, 1)
				mail := f.emails.sent[0]
				assert.Equal(t, "https://devevents.example/events/devconf", mail.EventURL)
				assert.Equal(t, "DevConf", mail.EventTitle)
				assert.Equal(t, "ticket-bk-1", mail.Ticket)
			}
		})
	}
}

func TestBookingService_CreateBooking_StoreErrors(t *testing.T) {
	ctx := context.Background()
	req := domain.BookingRequest{Slug: "devconf", Email: "ada@example.com"}

	t.Run("create fails", func(t *testing.T) {
		f := newBookingFixture()
		f.bookings.err = errors.New("insert failed")
		_, err := f.svc.CreateBooking(ctx, req)
		require.ErrorContains(t, err, "create booking: insert failed")
		assert.Empty(t, f.emails.sent)
	})

	t.Run("ticket fails", func(t *testing.T) {
		f := newBookingFixture()
		f.tickets.issueErr = errors.New("no key")
		_, err := f.svc.CreateBooking(ctx, req)
		require.ErrorContains(t, err, "issue ticket: no key")
	})
}

func TestBookingService_CountBookings(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := f.svc.CreateBooking(ctx, domain.BookingRequest{Slug: "devconf", Email: email})
		require.NoError(t, err)
	}

	n, err := f.svc.CountBookings(ctx, "devconf")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = f.svc.CountBookings(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	f.bookings.countErr = errors.New("boom")
	_, err = f.svc.CountBookings(ctx, "devconf")
	require.ErrorContains(t, err, "count bookings")
}

func TestBookingService_VerifyTicket(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	conf, err := f.svc.CreateBooking(ctx, domain.BookingRequest{Slug: "devconf", Email: "ada@example.com"})
	require.NoError(t, err)

	ticket, err := f.svc.VerifyTicket(ctx, conf.Ticket)
	require.NoError(t, err)
	assert.Equal(t, conf.Booking.ID, ticket.BookingID)

	_, err = f.svc.VerifyTicket(ctx, "  ")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.VerifyTicket(ctx, "forged")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Ticket is invalid or expired", ve.Message)
}
