package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleCivilian   = "civilian"
	RoleOperator   = "operator"
	RoleSupervisor = "supervisor"
	RolePatrol     = "patrol"
)

// User holds the structure for the users collection in mongo
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	FirstName   string             `bson:"firstName" json:"firstName"`
	LastName    string             `bson:"lastName" json:"lastName"`
	Role        string             `bson:"role" json:"role"`
	BadgeNumber string             `bson:"badgeNumber,omitempty" json:"badgeNumber,omitempty"`
	Department  string             `bson:"department,omitempty" json:"department,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins first and last name for display strings.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Officer is the trimmed identity row returned by the officer listing
type Officer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BadgeNumber string `json:"badgeNumber"`
}
