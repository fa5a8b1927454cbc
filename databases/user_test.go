package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	. "github.com/Dipto6969/Police-Positive/databases"
	"github.com/Dipto6969/Police-Positive/databases/mocks"
	"github.com/Dipto6969/Police-Positive/models"
)

func TestNewUserDatabase(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	userDB := NewUserDatabase(dbHelper)

	assert.NotEmpty(t, userDB)
}

func TestUserDatabaseFindOneSuccess(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	oid := primitive.NewObjectID()

	srHelper.On("Decode", mock.AnythingOfType("**models.User")).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).ID = oid
		(*arg).Email = "jan@example.com"
	})
	collectionHelper.On("FindOne", context.Background(), bson.M{"email": "jan@example.com"}).Return(srHelper)
	dbHelper.On("Collection", "users").Return(collectionHelper)

	userDB := NewUserDatabase(dbHelper)
	user, err := userDB.FindOne(context.Background(), bson.M{"email": "jan@example.com"})

	assert.NoError(t, err)
	assert.Equal(t, oid, user.ID)
	assert.Equal(t, "jan@example.com", user.Email)
}

func TestUserDatabaseFindOneError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.AnythingOfType("**models.User")).Return(errors.New("mocked-error"))
	collectionHelper.On("FindOne", context.Background(), bson.M{"email": "nope"}).Return(srHelper)
	dbHelper.On("Collection", "users").Return(collectionHelper)

	userDB := NewUserDatabase(dbHelper)
	user, err := userDB.FindOne(context.Background(), bson.M{"email": "nope"})

	assert.Nil(t, user)
	assert.EqualError(t, err, "mocked-error")
}

func TestUserDatabaseFindSuccess(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	curHelper := &mocks.CursorHelper{}

	curHelper.On("Decode", mock.AnythingOfType("*[]models.User")).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.User)
		*arg = []models.User{{Role: models.RoleOperator, BadgeNumber: "B-100"}}
	})
	collectionHelper.On("Find", context.Background(), bson.M{"role": "operator"}).Return(curHelper, nil)
	dbHelper.On("Collection", "users").Return(collectionHelper)

	userDB := NewUserDatabase(dbHelper)
	users, err := userDB.Find(context.Background(), bson.M{"role": "operator"})

	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "B-100", users[0].BadgeNumber)
}

func TestUserDatabaseFindError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("Find", context.Background(), bson.M{"role": "operator"}).Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "users").Return(collectionHelper)

	userDB := NewUserDatabase(dbHelper)
	users, err := userDB.Find(context.Background(), bson.M{"role": "operator"})

	assert.Nil(t, users)
	assert.EqualError(t, err, "mocked-error")
}

func TestUserDatabaseInsertOneSuccess(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	iorHelper := &mocks.InsertOneResultHelper{}

	collectionHelper.On("InsertOne", context.Background(), mock.AnythingOfType("models.User")).Return(iorHelper, nil)
	dbHelper.On("Collection", "users").Return(collectionHelper)

	userDB := NewUserDatabase(dbHelper)
	res, err := userDB.InsertOne(context.Background(), models.User{Email: "jan@example.com"})

	assert.NoError(t, err)
	assert.Equal(t, iorHelper, res)
}
