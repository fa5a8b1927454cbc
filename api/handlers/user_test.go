package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dipto6969/Police-Positive/databases"
	"github.com/Dipto6969/Police-Positive/databases/mocks"
	"github.com/Dipto6969/Police-Positive/models"
)

func TestGetOfficersHandler(t *testing.T) {
	oid := primitive.NewObjectID()

	collectionHelper := &mocks.CollectionHelper{}
	var filter bson.M
	cur := &mocks.CursorHelper{}
	cur.On("Decode", mock.AnythingOfType("*[]models.User")).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.User)
		*arg = []models.User{{ID: oid, FirstName: "John", LastName: "Smith", BadgeNumber: "B-1", Role: models.RoleOperator}}
	})
	collectionHelper.On("Find", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			filter = args.Get(1).(bson.M)
		}).Return(cur, nil)

	dbHelper := &mocks.DatabaseHelper{}
	dbHelper.On("Collection", "users").Return(collectionHelper)
	u := User{DB: databases.NewUserDatabase(dbHelper)}

	req := httptest.NewRequest("GET", "/api/users/officers", nil)
	w := httptest.NewRecorder()
	u.GetOfficersHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleOperator, filter["role"])

	var officers []models.Officer
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &officers))
	assert.Len(t, officers, 1)
	assert.Equal(t, oid.Hex(), officers[0].ID)
	assert.Equal(t, "John Smith", officers[0].Name)
	assert.Equal(t, "B-1", officers[0].BadgeNumber)
}

func TestGetOfficersHandlerEmpty(t *testing.T) {
	collectionHelper := &mocks.CollectionHelper{}
	cur := &mocks.CursorHelper{}
	cur.On("Decode", mock.AnythingOfType("*[]models.User")).Return(nil)
	collectionHelper.On("Find", mock.Anything, mock.Anything).Return(cur, nil)

	dbHelper := &mocks.DatabaseHelper{}
	dbHelper.On("Collection", "users").Return(collectionHelper)
	u := User{DB: databases.NewUserDatabase(dbHelper)}

	req := httptest.NewRequest("GET", "/api/users/officers", nil)
	w := httptest.NewRecorder()
	u.GetOfficersHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
