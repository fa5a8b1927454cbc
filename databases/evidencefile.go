package databases

// go generate: mockery --name EvidenceFileDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dipto6969/Police-Positive/models"
)

const evidenceFileName = "evidencefiles"

// EvidenceFileDatabase contains the methods to use with the evidence file database
type EvidenceFileDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.EvidenceFile, error)
	InsertOne(ctx context.Context, file models.EvidenceFile, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error)
}

type evidenceFileDatabase struct {
	db DatabaseHelper
}

// NewEvidenceFileDatabase initializes a new instance of evidence file database with the provided db connection
func NewEvidenceFileDatabase(db DatabaseHelper) EvidenceFileDatabase {
	return &evidenceFileDatabase{
		db: db,
	}
}

func (e *evidenceFileDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.EvidenceFile, error) {
	cursor, err := e.db.Collection(evidenceFileName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var files []models.EvidenceFile
	if err := cursor.Decode(&files); err != nil {
		return nil, err
	}
	return files, nil
}

func (e *evidenceFileDatabase) InsertOne(ctx context.Context, file models.EvidenceFile, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return e.db.Collection(evidenceFileName).InsertOne(ctx, file, opts...)
}

func (e *evidenceFileDatabase) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return e.db.Collection(evidenceFileName).DeleteMany(ctx, filter, opts...)
}
