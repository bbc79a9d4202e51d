// Package calendar exports events as iCalendar documents.
package calendar

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"devevents/internal/domain"
)

// Layouts accepted for an event's date and time fields, tried in order.
var (
	DateLayouts = []string{"2006-01-02", "January 2, 2006", "Jan 2, 2006", "02/01/2006"}
	TimeLayouts = []string{"15:04", "3:04 PM", "03:04 PM", "3:04PM"}
)

const floatingLayout = "20060102T150405"

type exporter struct {
	baseURL string
	now     func() time.Time
}

// NewExporter returns a CalendarExporter whose events link to baseURL/events/<slug>.
func NewExporter(baseURL string) domain.CalendarExporter {
	return &exporter{baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// Export renders e as a VCALENDAR holding a single VEVENT. It returns
// domain.ErrUnschedulable when e.Date matches none of DateLayouts.
func (x *exporter) Export(e *domain.Event) ([]byte, error) {
	start, allDay, err := ParseStart(e.Date, e.Time)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendarFor("devevents")
	cal.SetMethod(ics.MethodPublish)

	ev := cal.AddEvent(e.ID + "@devevents")
	ev.SetDtStampTime(x.now().UTC())
	if !e.CreatedAt.IsZero() {
		ev.SetCreatedTime(e.CreatedAt)
	}
	if !e.UpdatedAt.IsZero() {
		ev.SetModifiedAt(e.UpdatedAt)
	}
	ev.SetSummary(e.Title)
	if e.Overview != "" {
		ev.SetDescription(e.Overview)
	}
	if loc := joinLocation(e.Venue, e.Location); loc != "" {
		ev.SetLocation(loc)
	}
	ev.SetURL(x.baseURL + "/events/" + e.Slug)
	if allDay {
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
	} else {
		// Events carry no zone, so the start is written as floating local time.
		ev.SetProperty(ics.ComponentPropertyDtStart, start.Format(floatingLayout))
	}
	return []byte(cal.Serialize()), nil
}

// ParseStart combines an event's date and time fields. An unparsable time yields an
// all-day start; an unparsable date yields domain.ErrUnschedulable.
func ParseStart(date, clock string) (start time.Time, allDay bool, err error) {
	day, ok := parseFirst(DateLayouts, strings.TrimSpace(date))
	if !ok {
		return time.Time{}, false, domain.ErrUnschedulable
	}
	tod, ok := parseFirst(TimeLayouts, strings.ToUpper(strings.TrimSpace(clock)))
	if !ok {
		return day, true, nil
	}
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC), false, nil
}

func parseFirst(layouts []string, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func joinLocation(venue, location string) string {
	venue, location = strings.TrimSpace(venue), strings.TrimSpace(location)
	switch {
	case venue == "":
		return location
	case location == "":
		return venue
	default:
		return venue + ", " + location
	}
}
