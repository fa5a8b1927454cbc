package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Dipto6969/Police-Positive/config"
	"github.com/Dipto6969/Police-Positive/databases"
	"github.com/Dipto6969/Police-Positive/models"
)

// User exported for testing purposes
type User struct {
	DB databases.UserDatabase
}

// GetOfficersHandler lists operator accounts as assignment targets
func (u User) GetOfficersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := u.DB.Find(r.Context(), bson.M{"role": models.RoleOperator})
	if err != nil {
		config.ErrorStatus("failed to get officers", http.StatusInternalServerError, w, err)
		return
	}

	officers := make([]models.Officer, 0, len(users))
	for _, user := range users {
		officers = append(officers, models.Officer{
			ID:          user.ID.Hex(),
			Name:        user.FullName(),
			BadgeNumber: user.BadgeNumber,
		})
	}

	b, err := json.Marshal(officers)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
