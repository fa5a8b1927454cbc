package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationMetadata carries the denormalized details shown inline
// with an officer-assignment notification.
type NotificationMetadata struct {
	CaseNumber         string `bson:"caseNumber,omitempty" json:"caseNumber,omitempty"`
	OfficerName        string `bson:"officerName,omitempty" json:"officerName,omitempty"`
	OfficerBadgeNumber string `bson:"officerBadgeNumber,omitempty" json:"officerBadgeNumber,omitempty"`
}

// Notification holds the structure for the notifications collection in mongo
type Notification struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID   `bson:"userId" json:"userId"`
	Type             string               `bson:"type" json:"type"`
	Title            string               `bson:"title" json:"title"`
	Message          string               `bson:"message" json:"message"`
	RelatedCaseID    *primitive.ObjectID  `bson:"relatedCaseId,omitempty" json:"relatedCaseId,omitempty"`
	RelatedOfficerID *primitive.ObjectID  `bson:"relatedOfficerId,omitempty" json:"relatedOfficerId,omitempty"`
	IsRead           bool                 `bson:"isRead" json:"isRead"`
	Priority         string               `bson:"priority" json:"priority"`
	Metadata         NotificationMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// NotificationListResponse is the paginated notification listing body
type NotificationListResponse struct {
	Notifications      []Notification `json:"notifications"`
	TotalNotifications int64          `json:"totalNotifications"`
	UnreadCount        int64          `json:"unreadCount"`
	CurrentPage        int            `json:"currentPage"`
	TotalPages         int            `json:"totalPages"`
}
