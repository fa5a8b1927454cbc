package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Dipto6969/Police-Positive/databases"
	"github.com/Dipto6969/Police-Positive/databases/mocks"
)

func TestStartRegistersJobs(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	s := New(databases.NewAlertDatabase(dbHelper))

	err := s.Start()
	assert.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestExpireAlertsDeactivatesPastExpiry(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("UpdateMany", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		f, ok := filter.(bson.M)
		return ok && f["isActive"] == true
	}), mock.Anything).Return(int64(2), nil)
	dbHelper.On("Collection", "alerts").Return(collectionHelper)

	s := New(databases.NewAlertDatabase(dbHelper))
	s.expireAlerts()

	collectionHelper.AssertExpectations(t)
}
