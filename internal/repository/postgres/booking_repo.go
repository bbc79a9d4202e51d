package postgres

import (
	"context"

	"devevents/internal/domain"
)

type bookingRepository struct {
	DB DBGetter
}

func NewBookingRepository(db DBGetter) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	db, err := r.DB.Get(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO bookings (event_id, slug, email, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return db.QueryRowContext(ctx, query, b.EventID, b.Slug, b.Email, b.CreatedAt).Scan(&b.ID)
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	db, err := r.DB.Get(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID).Scan(&n)
	return n, err
}
