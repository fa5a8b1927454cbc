package databases

// go generate: mockery --name TimelineEventDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dipto6969/Police-Positive/models"
)

const timelineEventName = "timelineevents"

// TimelineEventDatabase contains the methods to use with the timeline event database
type TimelineEventDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.TimelineEvent, error)
	InsertOne(ctx context.Context, event models.TimelineEvent, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error)
}

type timelineEventDatabase struct {
	db DatabaseHelper
}

// NewTimelineEventDatabase initializes a new instance of timeline event database with the provided db connection
func NewTimelineEventDatabase(db DatabaseHelper) TimelineEventDatabase {
	return &timelineEventDatabase{
		db: db,
	}
}

func (t *timelineEventDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.TimelineEvent, error) {
	cursor, err := t.db.Collection(timelineEventName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var events []models.TimelineEvent
	if err := cursor.Decode(&events); err != nil {
		return nil, err
	}
	return events, nil
}

func (t *timelineEventDatabase) InsertOne(ctx context.Context, event models.TimelineEvent, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return t.db.Collection(timelineEventName).InsertOne(ctx, event, opts...)
}

func (t *timelineEventDatabase) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return t.db.Collection(timelineEventName).DeleteMany(ctx, filter, opts...)
}
