package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"devevents/internal/domain"

	"github.com/lib/pq"
)

const eventColumns = `id, slug, title, description, overview, image, venue, location, date, time, mode, audience, agenda, organizer, tags, created_at, updated_at`

type eventRepository struct {
	DB DBGetter
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db DBGetter) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	db, err := r.DB.Get(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO events (slug, title, description, overview, image, venue, location, date, time, mode, audience, agenda, organizer, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err = db.QueryRowContext(ctx, query,
		e.Slug, e.Title, e.Description, e.Overview, e.Image, e.Venue, e.Location, e.Date, e.Time,
		e.Mode, e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.NewValidationError(fmt.Sprintf("An event with slug '%s' already exists", e.Slug))
		}
		return err
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	db, err := r.DB.Get(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	db, err := r.DB.Get(ctx)
	if err != nil {
		return nil, err
	}
	e, err := scanEvent(db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListSharingTags(ctx context.Context, tags []string, excludeID string) ([]*domain.Event, error) {
	if len(tags) == 0 {
		return []*domain.Event{}, nil
	}
	db, err := r.DB.Get(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE tags && $1 AND id::text <> $2
		 ORDER BY created_at DESC, id DESC`,
		pq.Array(tags), excludeID)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Slug, &e.Title, &e.Description, &e.Overview, &e.Image, &e.Venue, &e.Location,
		&e.Date, &e.Time, &e.Mode, &e.Audience, pq.Array(&e.Agenda), &e.Organizer, pq.Array(&e.Tags),
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
