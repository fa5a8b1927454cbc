package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Dipto6969/Police-Positive/config"
	"github.com/Dipto6969/Police-Positive/databases"
	"github.com/Dipto6969/Police-Positive/models"
)

// Report exported for testing purposes
type Report struct {
	DB databases.ComplaintDatabase
}

// rangeMatch builds the createdAt window filter shared by all reports
func rangeMatch(r *http.Request) bson.M {
	match := bson.M{}
	q := r.URL.Query()
	window := bson.M{}
	if start, ok := parseDate(q.Get("startDate")); ok {
		window["$gte"] = start
	}
	if end, ok := parseDate(q.Get("endDate")); ok {
		window["$lte"] = end
	}
	if len(window) > 0 {
		match["createdAt"] = window
	}
	return match
}

func (rep Report) groupCounts(w http.ResponseWriter, r *http.Request, pipeline []bson.M) {
	cursor, err := rep.DB.Aggregate(r.Context(), pipeline)
	if err != nil {
		config.ErrorStatus("failed to aggregate complaints", http.StatusInternalServerError, w, err)
		return
	}
	rows := []models.GroupCount{}
	if err := cursor.Decode(&rows); err != nil {
		config.ErrorStatus("failed to decode aggregation", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(rows)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ComplaintsByCategoryHandler counts complaints per category,
// most common first.
func (rep Report) ComplaintsByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	rep.groupCounts(w, r, []bson.M{
		{"$match": rangeMatch(r)},
		{"$group": bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
	})
}

// ComplaintsByStatusHandler counts complaints per status
func (rep Report) ComplaintsByStatusHandler(w http.ResponseWriter, r *http.Request) {
	rep.groupCounts(w, r, []bson.M{
		{"$match": rangeMatch(r)},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	})
}

// ComplaintsByPriorityHandler counts complaints per priority
func (rep Report) ComplaintsByPriorityHandler(w http.ResponseWriter, r *http.Request) {
	rep.groupCounts(w, r, []bson.M{
		{"$match": rangeMatch(r)},
		{"$group": bson.M{"_id": "$priority", "count": bson.M{"$sum": 1}}},
	})
}

// bucket formats for the over-time report
var intervalFormats = map[string]string{
	"hour":  "%Y-%m-%d %H:00",
	"day":   "%Y-%m-%d",
	"week":  "%Y-W%V",
	"month": "%Y-%m",
}

// ComplaintsOverTimeHandler buckets complaint counts by the interval
// query parameter (hour, day, week or month; day by default).
func (rep Report) ComplaintsOverTimeHandler(w http.ResponseWriter, r *http.Request) {
	format, ok := intervalFormats[r.URL.Query().Get("interval")]
	if !ok {
		format = intervalFormats["day"]
	}
	rep.groupCounts(w, r, []bson.M{
		{"$match": rangeMatch(r)},
		{"$group": bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": format, "date": "$createdAt"}},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	})
}

// OfficerPerformanceHandler summarizes assigned/resolved/closed counts
// and the resolution rate per assigned officer.
func (rep Report) OfficerPerformanceHandler(w http.ResponseWriter, r *http.Request) {
	match := rangeMatch(r)
	match["assignedOfficer"] = bson.M{"$exists": true, "$ne": nil}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":           "$assignedOfficer",
			"totalAssigned": bson.M{"$sum": 1},
			"resolved":      bson.M{"$sum": bson.M{"$cond": []interface{}{bson.M{"$eq": []interface{}{"$status", models.StatusResolved}}, 1, 0}}},
			"closed":        bson.M{"$sum": bson.M{"$cond": []interface{}{bson.M{"$eq": []interface{}{"$status", models.StatusClosed}}, 1, 0}}},
		}},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "officer",
		}},
		{"$unwind": "$officer"},
		{"$project": bson.M{
			"_id":           0,
			"officerId":     "$_id",
			"officerName":   bson.M{"$concat": []interface{}{"$officer.firstName", " ", "$officer.lastName"}},
			"badgeNumber":   "$officer.badgeNumber",
			"totalAssigned": 1,
			"resolved":      1,
			"closed":        1,
			// guard the division so officers with zero assignments report a zero rate
			"resolutionRate": bson.M{"$cond": []interface{}{
				bson.M{"$gt": []interface{}{"$totalAssigned", 0}},
				bson.M{"$multiply": []interface{}{
					bson.M{"$divide": []interface{}{bson.M{"$add": []interface{}{"$resolved", "$closed"}}, "$totalAssigned"}},
					100,
				}},
				0,
			}},
		}},
		{"$sort": bson.M{"resolutionRate": -1}},
	}

	cursor, err := rep.DB.Aggregate(r.Context(), pipeline)
	if err != nil {
		config.ErrorStatus("failed to aggregate complaints", http.StatusInternalServerError, w, err)
		return
	}
	rows := []models.OfficerPerformance{}
	if err := cursor.Decode(&rows); err != nil {
		config.ErrorStatus("failed to decode aggregation", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(rows)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ResolutionTimeStatsHandler reports average, min and max resolution
// durations in hours over resolved and closed complaints.
func (rep Report) ResolutionTimeStatsHandler(w http.ResponseWriter, r *http.Request) {
	match := rangeMatch(r)
	match["status"] = bson.M{"$in": []string{models.StatusResolved, models.StatusClosed}}

	pipeline := []bson.M{
		{"$match": match},
		{"$project": bson.M{
			"category": 1,
			"resolutionTime": bson.M{"$divide": []interface{}{
				bson.M{"$subtract": []interface{}{"$updatedAt", "$createdAt"}},
				1000 * 60 * 60,
			}},
		}},
		{"$group": bson.M{
			"_id":                   nil,
			"averageResolutionTime": bson.M{"$avg": "$resolutionTime"},
			"minResolutionTime":     bson.M{"$min": "$resolutionTime"},
			"maxResolutionTime":     bson.M{"$max": "$resolutionTime"},
			"resolutionTimesByCategory": bson.M{"$push": bson.M{
				"category":       "$category",
				"resolutionTime": "$resolutionTime",
			}},
		}},
	}

	cursor, err := rep.DB.Aggregate(r.Context(), pipeline)
	if err != nil {
		config.ErrorStatus("failed to aggregate complaints", http.StatusInternalServerError, w, err)
		return
	}
	rows := []models.ResolutionTimeStats{}
	if err := cursor.Decode(&rows); err != nil {
		config.ErrorStatus("failed to decode aggregation", http.StatusInternalServerError, w, err)
		return
	}

	var resp interface{} = bson.M{}
	if len(rows) > 0 {
		resp = rows[0]
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

// DashboardStatsHandler is the operator dashboard summary: totals,
// open work, and how fast cases resolved over the last 30 days.
func (rep Report) DashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	stats := models.DashboardStats{}
	counts := []struct {
		filter bson.M
		dest   *int64
	}{
		{bson.M{}, &stats.TotalComplaints},
		{bson.M{"status": models.StatusPending}, &stats.PendingComplaints},
		{bson.M{"status": models.StatusResolved}, &stats.ResolvedComplaints},
		{bson.M{"priority": bson.M{"$in": []string{"high", models.PriorityUrgent}}}, &stats.HighPriorityComplaints},
		{bson.M{"createdAt": bson.M{"$gte": weekAgo}}, &stats.ComplaintsThisWeek},
		{bson.M{"createdAt": bson.M{"$gte": monthAgo}}, &stats.ComplaintsThisMonth},
	}
	for _, c := range counts {
		n, err := rep.DB.CountDocuments(ctx, c.filter)
		if err != nil {
			config.ErrorStatus("failed to count complaints", http.StatusInternalServerError, w, err)
			return
		}
		*c.dest = n
	}

	resolved, err := rep.DB.Find(ctx, bson.M{
		"status":    models.StatusResolved,
		"createdAt": bson.M{"$gte": monthAgo},
	})
	if err != nil {
		config.ErrorStatus("failed to get resolved complaints", http.StatusInternalServerError, w, err)
		return
	}
	if len(resolved) > 0 {
		var totalHours float64
		for _, comp := range resolved {
			totalHours += comp.UpdatedAt.Sub(comp.CreatedAt).Hours()
		}
		stats.AverageResolutionTime = int64(math.Round(totalHours / float64(len(resolved))))
	}

	b, err := json.Marshal(stats)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
