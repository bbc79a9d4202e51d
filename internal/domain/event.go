package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Event modes accepted by the intake pipeline.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Modes lists the accepted event modes in display order.
var Modes = []string{ModeOnline, ModeOffline, ModeHybrid}

// slugPattern is the shape every stored and looked-up slug must have.
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// InvalidSlugMessage is reported when a requested slug fails slugPattern.
const InvalidSlugMessage = "Slug must contain only lowercase letters, numbers, and hyphens"

// Event represents a listed developer event.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent builds an Event from a validated draft. The slug is derived from the title;
// ID is set by the repository on create.
func NewEvent(d *EventDraft, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       d.Title,
		Slug:        Slugify(d.Title),
		Description: d.Description,
		Overview:    d.Overview,
		Image:       d.Image,
		Venue:       d.Venue,
		Location:    d.Location,
		Date:        d.Date,
		Time:        d.Time,
		Mode:        d.Mode,
		Audience:    d.Audience,
		Agenda:      append([]string(nil), d.Agenda...),
		Organizer:   d.Organizer,
		Tags:        append([]string(nil), d.Tags...),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Slugify lowercases s and collapses every run of characters outside [a-z0-9] into a
// single hyphen, trimming hyphens at both ends.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeSlug trims and lowercases a slug taken from a request and reports whether
// the result is a well-formed slug.
func NormalizeSlug(raw string) (string, bool) {
	slug := strings.ToLower(strings.TrimSpace(raw))
	return slug, slugPattern.MatchString(slug)
}

// SharesTagWith reports whether e has at least one tag in common with tags.
func (e *Event) SharesTagWith(tags []string) bool {
	for _, t := range e.Tags {
		for _, o := range tags {
			if t == o {
				return true
			}
		}
	}
	return false
}

// EventRepository defines the interface for event storage.
// Create assigns ID and rejects duplicate slugs with a *ValidationError.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context) ([]*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// ListSharingTags returns events having at least one of tags, excluding excludeID.
	ListSharingTags(ctx context.Context, tags []string, excludeID string) ([]*Event, error)
}

// CalendarExporter renders an event as an iCalendar document.
type CalendarExporter interface {
	Export(e *Event) ([]byte, error)
}

// EventService defines the event intake and read operations.
type EventService interface {
	CreateEvent(ctx context.Context, draft *EventDraft) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	// GetSimilarEventsBySlug never fails; lookup errors yield an empty result.
	GetSimilarEventsBySlug(ctx context.Context, slug string) []*Event
}
