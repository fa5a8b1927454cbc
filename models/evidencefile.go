package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EvidenceFile holds the structure for the evidencefiles collection in mongo
type EvidenceFile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ComplaintID  primitive.ObjectID `bson:"complaintId" json:"complaintId"`
	Filename     string             `bson:"filename" json:"filename"`
	OriginalName string             `bson:"originalName" json:"originalName"`
	Mimetype     string             `bson:"mimetype" json:"mimetype"`
	Size         int64              `bson:"size" json:"size"`
	Path         string             `bson:"path" json:"path"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EvidenceFileView is an evidence file as rendered in API responses
type EvidenceFileView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"`
}
