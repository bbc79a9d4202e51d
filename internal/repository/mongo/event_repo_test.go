package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"devevents/internal/domain"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// staticDB hands out a fixed handle, standing in for the connection cache.
type staticDB struct {
	db  *mongo.Database
	err error
}

func (s staticDB) Get(context.Context) (*mongo.Database, error) { return s.db, s.err }

const eventsNS = "devevents.events"

var (
	t1 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
)

func eventDoc(id primitive.ObjectID, slug string, tags bson.A, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Title " + slug},
		{Key: "slug", Value: slug},
		{Key: "description", Value: "desc"},
		{Key: "overview", Value: "overview"},
		{Key: "image", Value: "/images/events/x.png"},
		{Key: "venue", Value: "Hall"},
		{Key: "location", Value: "Berlin"},
		{Key: "date", Value: "2026-11-07"},
		{Key: "time", Value: "09:00"},
		{Key: "mode", Value: "online"},
		{Key: "audience", Value: "Developers"},
		{Key: "agenda", Value: bson.A{"Intro", "Talk"}},
		{Key: "organizer", Value: "Org"},
		{Key: "tags", Value: tags},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(created)},
		{Key: "updatedAt", Value: primitive.NewDateTimeFromTime(created)},
	}
}

func sampleEvent() *domain.Event {
	return &domain.Event{
		Title:     "DevConf",
		Slug:      "devconf",
		Mode:      "online",
		Agenda:    []string{"Intro"},
		Tags:      []string{"tech"},
		CreatedAt: t1,
		UpdatedAt: t1,
	}
}

func TestEventRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("success assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		e := sampleEvent()
		err := NewEventRepository(staticDB{db: mt.DB}).Create(context.Background(), e)
		require.NoError(mt, err)
		_, err = primitive.ObjectIDFromHex(e.ID)
		require.NoError(mt, err)
	})

	mt.Run("duplicate slug", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: devevents.events index: slug_1",
		}))
		e := sampleEvent()
		err := NewEventRepository(staticDB{db: mt.DB}).Create(context.Background(), e)
		require.ErrorIs(mt, err, domain.ErrValidation)
		require.Equal(mt, "An event with slug 'devconf' already exists", err.Error())
		require.Empty(mt, e.ID)
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad value"}))
		err := NewEventRepository(staticDB{db: mt.DB}).Create(context.Background(), sampleEvent())
		require.Error(mt, err)
		require.False(mt, errors.Is(err, domain.ErrValidation))
	})
}

func TestEventRepository_Create_ConnectionError(t *testing.T) {
	err := NewEventRepository(staticDB{err: errors.New("server selection timeout")}).Create(context.Background(), sampleEvent())
	require.EqualError(t, err, "server selection timeout")
}

func TestEventRepository_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("returns decoded events", func(mt *mtest.T) {
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch,
			eventDoc(id2, "b", bson.A{"go"}, t2),
			eventDoc(id1, "a", bson.A{"tech", "dev"}, t1),
		))
		got, err := NewEventRepository(staticDB{db: mt.DB}).List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		require.Equal(mt, id2.Hex(), got[0].ID)
		require.Equal(mt, "b", got[0].Slug)
		require.True(mt, t2.Equal(got[0].CreatedAt))
		require.Equal(mt, []string{"tech", "dev"}, got[1].Tags)
		require.Equal(mt, []string{"Intro", "Talk"}, got[1].Agenda)
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch))
		got, err := NewEventRepository(staticDB{db: mt.DB}).List(context.Background())
		require.NoError(mt, err)
		require.NotNil(mt, got)
		require.Empty(mt, got)
	})
}

func TestEventRepository_GetBySlug(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch, eventDoc(id, "devconf", bson.A{"tech"}, t1)))
		got, err := NewEventRepository(staticDB{db: mt.DB}).GetBySlug(context.Background(), "devconf")
		require.NoError(mt, err)
		require.Equal(mt, id.Hex(), got.ID)
		require.Equal(mt, "Title devconf", got.Title)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch))
		got, err := NewEventRepository(staticDB{db: mt.DB}).GetBySlug(context.Background(), "missing")
		require.ErrorIs(mt, err, domain.ErrNotFound)
		require.Nil(mt, got)
	})
}

func TestEventRepository_ListSharingTags(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("returns overlapping events", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, eventsNS, mtest.FirstBatch, eventDoc(id, "other", bson.A{"dev"}, t2)))
		got, err := NewEventRepository(staticDB{db: mt.DB}).ListSharingTags(context.Background(), []string{"tech", "dev"}, primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		require.Equal(mt, "other", got[0].Slug)
	})

	mt.Run("no tags never queries", func(mt *mtest.T) {
		got, err := NewEventRepository(staticDB{db: mt.DB}).ListSharingTags(context.Background(), nil, "")
		require.NoError(mt, err)
		require.Empty(mt, got)
	})
}
