package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alert is a public safety broadcast published by an officer. Expired
// alerts are deactivated by the scheduler.
type Alert struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title     string              `bson:"title" json:"title"`
	Message   string              `bson:"message" json:"message"`
	Priority  string              `bson:"priority" json:"priority"`
	Location  *Location           `bson:"location,omitempty" json:"location,omitempty"`
	IsActive  bool                `bson:"isActive" json:"isActive"`
	CreatedBy *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	ExpiresAt *time.Time          `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
