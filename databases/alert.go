package databases

// go generate: mockery --name AlertDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dipto6969/Police-Positive/models"
)

const alertName = "alerts"

// AlertDatabase contains the methods to use with the alert database
type AlertDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Alert, error)
	InsertOne(ctx context.Context, alert models.Alert, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error)
}

type alertDatabase struct {
	db DatabaseHelper
}

// NewAlertDatabase initializes a new instance of alert database with the provided db connection
func NewAlertDatabase(db DatabaseHelper) AlertDatabase {
	return &alertDatabase{
		db: db,
	}
}

func (a *alertDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Alert, error) {
	cursor, err := a.db.Collection(alertName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var alerts []models.Alert
	if err := cursor.Decode(&alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (a *alertDatabase) InsertOne(ctx context.Context, alert models.Alert, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return a.db.Collection(alertName).InsertOne(ctx, alert, opts...)
}

func (a *alertDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error) {
	return a.db.Collection(alertName).UpdateOne(ctx, filter, update, opts...)
}

func (a *alertDatabase) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (int64, error) {
	return a.db.Collection(alertName).UpdateMany(ctx, filter, update, opts...)
}
