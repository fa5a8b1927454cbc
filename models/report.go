package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// GroupCount is one $group row keyed by the grouped value (category,
// status, priority or time bucket).
type GroupCount struct {
	ID    string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// OfficerPerformance is one row of the officer performance report
type OfficerPerformance struct {
	OfficerID      primitive.ObjectID `bson:"officerId" json:"officerId"`
	OfficerName    string             `bson:"officerName" json:"officerName"`
	BadgeNumber    string             `bson:"badgeNumber" json:"badgeNumber"`
	TotalAssigned  int64              `bson:"totalAssigned" json:"totalAssigned"`
	Resolved       int64              `bson:"resolved" json:"resolved"`
	Closed         int64              `bson:"closed" json:"closed"`
	ResolutionRate float64            `bson:"resolutionRate" json:"resolutionRate"`
}

// CategoryResolutionTime pairs a category with one resolution duration in hours
type CategoryResolutionTime struct {
	Category       string  `bson:"category" json:"category"`
	ResolutionTime float64 `bson:"resolutionTime" json:"resolutionTime"`
}

// ResolutionTimeStats summarizes resolution durations in hours
type ResolutionTimeStats struct {
	AverageResolutionTime     float64                  `bson:"averageResolutionTime" json:"averageResolutionTime"`
	MinResolutionTime         float64                  `bson:"minResolutionTime" json:"minResolutionTime"`
	MaxResolutionTime         float64                  `bson:"maxResolutionTime" json:"maxResolutionTime"`
	ResolutionTimesByCategory []CategoryResolutionTime `bson:"resolutionTimesByCategory" json:"resolutionTimesByCategory"`
}

// DashboardStats is the operator dashboard summary
type DashboardStats struct {
	TotalComplaints        int64 `json:"totalComplaints"`
	PendingComplaints      int64 `json:"pendingComplaints"`
	ResolvedComplaints     int64 `json:"resolvedComplaints"`
	HighPriorityComplaints int64 `json:"highPriorityComplaints"`
	AverageResolutionTime  int64 `json:"averageResolutionTime"`
	ComplaintsThisWeek     int64 `json:"complaintsThisWeek"`
	ComplaintsThisMonth    int64 `json:"complaintsThisMonth"`
}
