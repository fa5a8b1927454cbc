package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Complaint statuses.
const (
	StatusPending       = "pending"
	StatusAssigned      = "assigned"
	StatusInvestigating = "investigating"
	StatusResolved      = "resolved"
	StatusClosed        = "closed"
)

// Complaint priorities.
const (
	PriorityMedium = "medium"
	PriorityUrgent = "urgent"
)

// Location is the place a complaint refers to
type Location struct {
	Address string  `bson:"address" json:"address"`
	Lat     float64 `bson:"lat" json:"lat"`
	Lng     float64 `bson:"lng" json:"lng"`
}

// Note is one free-form note appended to a complaint
type Note struct {
	Text      string              `bson:"text" json:"text"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	By        *primitive.ObjectID `bson:"by,omitempty" json:"by,omitempty"`
}

// Complaint holds the structure for the complaints collection in mongo
type Complaint struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	CaseNumber      string                 `bson:"caseNumber" json:"caseNumber"`
	Type            string                 `bson:"type" json:"type"`
	Category        string                 `bson:"category" json:"category"`
	Title           string                 `bson:"title" json:"title"`
	Description     string                 `bson:"description" json:"description"`
	Location        Location               `bson:"location" json:"location"`
	ReporterInfo    map[string]interface{} `bson:"reporterInfo" json:"reporterInfo"`
	Status          string                 `bson:"status" json:"status"`
	Priority        string                 `bson:"priority" json:"priority"`
	AssignedOfficer *primitive.ObjectID    `bson:"assignedOfficer,omitempty" json:"assignedOfficer,omitempty"`
	Notes           []Note                 `bson:"notes" json:"notes"`
	CreatedBy       *primitive.ObjectID    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// OfficerRef is the populated assigned-officer block inside a
// complaint view. FirstName/LastName are only filled on the public
// tracking view.
type OfficerRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BadgeNumber string `json:"badgeNumber"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
}

// NoteView is a note as rendered in API responses. By is either a hex
// user id, a NoteAuthor, or nil depending on the endpoint.
type NoteView struct {
	Text      string      `json:"text"`
	CreatedAt string      `json:"createdAt"`
	By        interface{} `json:"by"`
}

// NoteAuthor is the resolved author block returned after adding a note
type NoteAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// EvidenceView groups stored files and notes under a complaint view.
// Notes is a []NoteView on list endpoints and a []string of note texts
// on the by-id endpoint.
type EvidenceView struct {
	Files []EvidenceFileView `json:"files"`
	Notes interface{}        `json:"notes"`
}

// TimelineEntryView is a timeline event as rendered in API responses
type TimelineEntryView struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Timestamp   string  `json:"timestamp"`
	UserID      *string `json:"userId"`
	UserName    string  `json:"userName"`
}

// ComplaintView is the complaint shape returned by the API
type ComplaintView struct {
	ID              string                 `json:"id"`
	CaseNumber      string                 `json:"caseNumber"`
	Type            string                 `json:"type"`
	Category        string                 `json:"category"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Location        Location               `json:"location"`
	ReporterInfo    map[string]interface{} `json:"reporterInfo"`
	Status          string                 `json:"status"`
	Priority        string                 `json:"priority"`
	AssignedOfficer *OfficerRef            `json:"assignedOfficer,omitempty"`
	Evidence        EvidenceView           `json:"evidence"`
	Timeline        []TimelineEntryView    `json:"timeline"`
	CreatedBy       interface{}            `json:"createdBy"`
	CreatedAt       string                 `json:"createdAt"`
	UpdatedAt       string                 `json:"updatedAt"`
}

// Pagination is the paging envelope on complaint listings
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// ComplaintListResponse is the paginated complaint listing body
type ComplaintListResponse struct {
	Complaints []ComplaintView `json:"complaints"`
	Pagination Pagination      `json:"pagination"`
}

// TrackResponse is the public tracking body. It is always written with
// HTTP 200; Error carries the failure reason when the lookup fails.
type TrackResponse struct {
	Error     *string             `json:"error"`
	Complaint *ComplaintView      `json:"complaint"`
	Timeline  []TimelineEntryView `json:"timeline"`
	Evidence  []EvidenceFileView  `json:"evidence"`
}
