package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timeline event types.
const (
	EventCreated  = "created"
	EventAssigned = "assigned"
	EventUpdated  = "updated"
	EventResolved = "resolved"
)

// TimelineEvent holds the structure for the timelineevents collection in mongo
type TimelineEvent struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ComplaintID primitive.ObjectID  `bson:"complaintId" json:"complaintId"`
	Type        string              `bson:"type" json:"type"`
	Description string              `bson:"description" json:"description"`
	UserID      *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
