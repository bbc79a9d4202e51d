package http

import (
	"net/http"
	"os"

	httpSwagger "github.com/swaggo/http-swagger"

	"devevents/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes. Uploaded images
// are served from imagesDir under /images/.
func NewRouter(
	events *controllers.EventController,
	bookings *controllers.BookingController,
	health *controllers.HealthController,
	imagesDir string,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /api/events", events.ListEvents)
	mux.HandleFunc("POST /api/events", events.CreateEvent)
	mux.HandleFunc("GET /api/events/{slug}", events.GetEventBySlug)
	mux.HandleFunc("GET /api/events/{slug}/similar", events.GetSimilarEvents)
	mux.HandleFunc("GET /api/events/{slug}/calendar.ics", events.GetEventCalendar)

	// Bookings
	mux.HandleFunc("POST /api/bookings", bookings.CreateBooking)
	mux.HandleFunc("GET /api/events/{slug}/bookings/count", bookings.CountBookings)
	mux.HandleFunc("GET /api/tickets/verify", bookings.VerifyTicket)

	// Static uploads
	mux.Handle("GET /images/", http.StripPrefix("/images", http.FileServer(filesOnly{http.Dir(imagesDir)})))

	// Health
	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.HandleFunc("GET /readyz", health.Readyz)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// filesOnly hides directories so the file server never renders a listing.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
