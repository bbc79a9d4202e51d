package mongo

import (
	"context"
	"time"

	"devevents/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bookingDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	EventID   any                `bson:"eventId"`
	Slug      string             `bson:"slug"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// eventRef stores event ids as ObjectIDs when they are ObjectID hex, so references
// written here match documents created by the events collection.
func eventRef(eventID string) any {
	if oid, err := primitive.ObjectIDFromHex(eventID); err == nil {
		return oid
	}
	return eventID
}

type bookingRepository struct {
	db DBGetter
}

// NewBookingRepository returns a domain.BookingRepository backed by the bookings collection.
func NewBookingRepository(db DBGetter) domain.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	db, err := r.db.Get(ctx)
	if err != nil {
		return err
	}
	doc := bookingDocument{
		ID:        primitive.NewObjectID(),
		EventID:   eventRef(b.EventID),
		Slug:      b.Slug,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
	}
	if _, err := db.Collection(bookingsCollection).InsertOne(ctx, doc); err != nil {
		return err
	}
	b.ID = doc.ID.Hex()
	return nil
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return 0, err
	}
	n, err := db.Collection(bookingsCollection).CountDocuments(ctx, bson.M{"eventId": eventRef(eventID)})
	return int(n), err
}
