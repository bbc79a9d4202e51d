package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"devevents/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService returns an EventService backed by eventRepo. Each operation is
// bounded by timeout.
func NewEventService(eventRepo domain.EventRepository, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, draft *domain.EventDraft) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if draft == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	event := domain.NewEvent(draft, now, now)
	if event.Slug == "" {
		return nil, domain.NewValidationError("Title must contain at least one letter or number")
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) GetSimilarEventsBySlug(ctx context.Context, slug string) []*domain.Event {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var tags []string
	var sourceID string
	source, err := s.eventRepo.GetBySlug(ctx, slug)
	switch {
	case err == nil:
		tags, sourceID = source.Tags, source.ID
	case errors.Is(err, domain.ErrNotFound):
	default:
		s.logger.WarnContext(ctx, "similar events: source lookup failed", "slug", slug, "err", err)
		return []*domain.Event{}
	}
	if len(tags) == 0 {
		return []*domain.Event{}
	}

	candidates, err := s.eventRepo.ListSharingTags(ctx, tags, sourceID)
	if err != nil {
		s.logger.WarnContext(ctx, "similar events: lookup failed", "slug", slug, "err", err)
		return []*domain.Event{}
	}
	out := make([]*domain.Event, 0, len(candidates))
	for _, e := range candidates {
		if e.ID == sourceID || !e.SharesTagWith(tags) {
			continue
		}
		out = append(out, e)
	}
	return out
}
