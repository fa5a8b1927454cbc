package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dipto6969/Police-Positive/api"
	"github.com/Dipto6969/Police-Positive/config"
	"github.com/Dipto6969/Police-Positive/databases"
	"github.com/Dipto6969/Police-Positive/models"
)

// Alert exported for testing purposes
type Alert struct {
	DB databases.AlertDatabase
}

var allowedAlertPriorities = map[string]bool{
	"low":      true,
	"medium":   true,
	"high":     true,
	"critical": true,
}

type alertRequest struct {
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Priority  string           `json:"priority"`
	Location  *models.Location `json:"location"`
	ExpiresAt *time.Time       `json:"expiresAt"`
}

// CreateAlertHandler publishes a safety alert. Civilian accounts
// cannot broadcast.
func (a Alert) CreateAlertHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := api.ActorFromContext(r.Context())
	if actor.Role == models.RoleCivilian || actor.Role == "" {
		config.ErrorStatus("Only officers can publish alerts", http.StatusForbidden, w, nil)
		return
	}
	actorID, ok := actorObjectID(r)
	if !ok {
		config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, nil)
		return
	}

	var req alertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to unmarshal request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Title == "" || req.Message == "" {
		config.ErrorStatus("Missing required fields", http.StatusBadRequest, w, nil)
		return
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	if !allowedAlertPriorities[priority] {
		config.ErrorStatus("Invalid priority provided", http.StatusBadRequest, w, nil)
		return
	}

	now := time.Now()
	alert := models.Alert{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Message:   req.Message,
		Priority:  priority,
		Location:  req.Location,
		IsActive:  true,
		CreatedBy: &actorID,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := a.DB.InsertOne(r.Context(), alert); err != nil {
		config.ErrorStatus("failed to create alert", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(alert)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// GetActiveAlertsHandler lists active alerts, newest first. Public.
func (a Alert) GetActiveAlertsHandler(w http.ResponseWriter, r *http.Request) {
	alerts, err := a.DB.Find(r.Context(), bson.M{"isActive": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		config.ErrorStatus("failed to get alerts", http.StatusInternalServerError, w, err)
		return
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}

	b, err := json.Marshal(alerts)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeactivateAlertHandler takes an alert off the air before expiry
func (a Alert) DeactivateAlertHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := api.ActorFromContext(r.Context())
	if actor.Role == models.RoleCivilian || actor.Role == "" {
		config.ErrorStatus("Only officers can publish alerts", http.StatusForbidden, w, nil)
		return
	}

	alertID := mux.Vars(r)["alert_id"]
	oid, err := primitive.ObjectIDFromHex(alertID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	matched, err := a.DB.UpdateOne(r.Context(),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}})
	if err != nil {
		config.ErrorStatus("failed to update alert", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("Alert not found", http.StatusNotFound, w, nil)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "Alert deactivated"})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
