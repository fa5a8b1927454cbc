package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Dipto6969/Police-Positive/config"
	"github.com/Dipto6969/Police-Positive/databases"
	"github.com/Dipto6969/Police-Positive/models"
)

// Notification exported for testing purposes
type Notification struct {
	DB databases.NotificationDatabase
}

// GetNotificationsHandler lists the actor's notifications newest
// first with unread and total counts.
func (n Notification) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actorObjectID(r)
	if !ok {
		config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, nil)
		return
	}

	q := r.URL.Query()
	page := intQueryParam(q.Get("page"), 1)
	limit := intQueryParam(q.Get("limit"), 20)

	filter := bson.M{"userId": actorID}
	if q.Get("unreadOnly") == "true" {
		filter["isRead"] = false
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	notifications, err := n.DB.Find(r.Context(), filter, opts)
	if err != nil {
		config.ErrorStatus("failed to get notifications", http.StatusInternalServerError, w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	total, err := n.DB.CountDocuments(r.Context(), filter)
	if err != nil {
		config.ErrorStatus("failed to count notifications", http.StatusInternalServerError, w, err)
		return
	}
	unread, err := n.DB.CountDocuments(r.Context(), bson.M{"userId": actorID, "isRead": false})
	if err != nil {
		config.ErrorStatus("failed to count notifications", http.StatusInternalServerError, w, err)
		return
	}

	resp := models.NotificationListResponse{
		Notifications:      notifications,
		TotalNotifications: total,
		UnreadCount:        unread,
		CurrentPage:        page,
		TotalPages:         int(math.Ceil(float64(total) / float64(limit))),
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkNotificationAsReadHandler marks one of the actor's
// notifications read. Notifications owned by others look like 404.
func (n Notification) MarkNotificationAsReadHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actorObjectID(r)
	if !ok {
		config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, nil)
		return
	}

	notificationID := mux.Vars(r)["notification_id"]
	oid, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	matched, err := n.DB.UpdateOne(r.Context(),
		bson.M{"_id": oid, "userId": actorID},
		bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now()}})
	if err != nil {
		config.ErrorStatus("failed to update notification", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("Notification not found", http.StatusNotFound, w, nil)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "Notification marked as read"})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkAllNotificationsAsReadHandler marks every unread notification
// of the actor as read.
func (n Notification) MarkAllNotificationsAsReadHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actorObjectID(r)
	if !ok {
		config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, nil)
		return
	}

	if _, err := n.DB.UpdateMany(r.Context(),
		bson.M{"userId": actorID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now()}}); err != nil {
		config.ErrorStatus("failed to update notifications", http.StatusInternalServerError, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "All notifications marked as read"})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// NotificationHub tracks websocket connections per user and delivers
// freshly stored notifications to them.
type NotificationHub struct {
	mu       sync.RWMutex
	clients  map[string][]*websocket.Conn
	upgrader websocket.Upgrader
}

// NewNotificationHub creates an empty hub
func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		clients: make(map[string][]*websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the connection and registers it under the
// userId query parameter until the peer goes away.
func (h *NotificationHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		config.ErrorStatus("userId is required", http.StatusBadRequest, w, nil)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[userID] = append(h.clients[userID], conn)
	h.mu.Unlock()
	zap.S().Infow("websocket client connected", "userId", userID)

	go func() {
		defer h.remove(userID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *NotificationHub) remove(userID string, conn *websocket.Conn) {
	conn.Close()
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[userID]
	for i, c := range conns {
		if c == conn {
			h.clients[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// Push delivers a notification to every live connection of the user.
// Delivery is best effort; dead connections are dropped.
func (h *NotificationHub) Push(userID string, notification models.Notification) {
	h.mu.RLock()
	conns := append([]*websocket.Conn(nil), h.clients[userID]...)
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(notification); err != nil {
			zap.S().Debugw("dropping dead websocket client", "userId", userID)
			h.remove(userID, conn)
		}
	}
}

// ConnectionCount reports the live connections for a user
func (h *NotificationHub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
