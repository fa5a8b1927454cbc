package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Dipto6969/Police-Positive/api"
	"github.com/Dipto6969/Police-Positive/config"
	"github.com/Dipto6969/Police-Positive/databases"
	"github.com/Dipto6969/Police-Positive/models"
)

// Complaint exported for testing purposes
type Complaint struct {
	DB        databases.ComplaintDatabase
	EDB       databases.EvidenceFileDatabase
	TDB       databases.TimelineEventDatabase
	NDB       databases.NotificationDatabase
	UDB       databases.UserDatabase
	Hub       *NotificationHub
	Mailer    Mailer
	UploadDir string
}

// sortable complaint listing fields
var allowedSortFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"priority":  true,
	"status":    true,
	"category":  true,
}

// generateCaseNumber builds the human readable case identifier. The
// random suffix is not checked for uniqueness; a collision surfaces as
// an insert error.
func generateCaseNumber() string {
	return fmt.Sprintf("CASE-%d-%04d", time.Now().Year(), rand.Intn(10000))
}

// priorityFor derives the stored priority from the complaint type
func priorityFor(complaintType string) string {
	switch strings.ToLower(complaintType) {
	case "emergency", "high":
		return models.PriorityUrgent
	default:
		return models.PriorityMedium
	}
}

type coordinatesPayload struct {
	Lat interface{} `json:"lat"`
	Lng interface{} `json:"lng"`
}

type locationPayload struct {
	Address     string              `json:"address"`
	Lat         interface{}         `json:"lat"`
	Lng         interface{}         `json:"lng"`
	Coordinates *coordinatesPayload `json:"coordinates"`
}

type complaintPayload struct {
	Type         string                 `json:"type"`
	Category     string                 `json:"category"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Location     locationPayload        `json:"location"`
	ReporterInfo map[string]interface{} `json:"reporterInfo"`
}

// toFloat accepts coordinates sent as numbers or numeric strings
func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// normalizeLocation flattens the two accepted location shapes: nested
// coordinates {lat,lng} or flat lat/lng fields.
func normalizeLocation(p locationPayload) (models.Location, bool) {
	latRaw, lngRaw := p.Lat, p.Lng
	if p.Coordinates != nil {
		latRaw, lngRaw = p.Coordinates.Lat, p.Coordinates.Lng
	}
	lat, latOK := toFloat(latRaw)
	lng, lngOK := toFloat(lngRaw)
	if p.Address == "" || !latOK || !lngOK {
		return models.Location{}, false
	}
	return models.Location{Address: p.Address, Lat: lat, Lng: lng}, true
}

func actorObjectID(r *http.Request) (primitive.ObjectID, bool) {
	actor, ok := api.ActorFromContext(r.Context())
	if !ok {
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// addTimelineEvent appends one event to a complaint's history
func (c Complaint) addTimelineEvent(r *http.Request, complaintID primitive.ObjectID, eventType, description string, userID *primitive.ObjectID) error {
	now := time.Now()
	event := models.TimelineEvent{
		ID:          primitive.NewObjectID(),
		ComplaintID: complaintID,
		Type:        eventType,
		Description: description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := c.TDB.InsertOne(r.Context(), event)
	return err
}

// listViews renders a batch of complaints with officers, creators and
// note authors resolved in one user query and evidence files attached.
func (c Complaint) listViews(r *http.Request, complaints []models.Complaint) []models.ComplaintView {
	users := c.usersByID(r.Context(), relatedUserIDs(complaints))

	ids := make([]primitive.ObjectID, 0, len(complaints))
	for i := range complaints {
		ids = append(ids, complaints[i].ID)
	}
	filesByComplaint := map[string][]models.EvidenceFileView{}
	if len(ids) > 0 {
		if files, err := c.EDB.Find(r.Context(), bson.M{"complaintId": bson.M{"$in": ids}}); err == nil {
			for _, f := range files {
				key := f.ComplaintID.Hex()
				filesByComplaint[key] = append(filesByComplaint[key], evidenceFileView(f))
			}
		}
	}

	views := make([]models.ComplaintView, 0, len(complaints))
	for i := range complaints {
		view := complaintView(complaints[i], users)
		if files, ok := filesByComplaint[complaints[i].ID.Hex()]; ok {
			view.Evidence.Files = files
		}
		views = append(views, view)
	}
	return views
}

// CreateComplaintHandler files a new complaint. The body is either
// plain JSON or multipart form data with a complaintData JSON field
// plus up to ten evidence files.
func (c Complaint) CreateComplaintHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actorObjectID(r)
	if !ok {
		config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, nil)
		return
	}

	var payload complaintPayload
	isMultipart := strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
	if isMultipart {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
			return
		}
		if err := json.Unmarshal([]byte(r.FormValue("complaintData")), &payload); err != nil {
			config.ErrorStatus("failed to unmarshal complaint data", http.StatusBadRequest, w, err)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			config.ErrorStatus("failed to unmarshal request body", http.StatusBadRequest, w, err)
			return
		}
	}

	if payload.Title == "" || payload.Description == "" || payload.Type == "" || payload.Category == "" {
		config.ErrorStatus("Missing required fields", http.StatusBadRequest, w, nil)
		return
	}
	location, ok := normalizeLocation(payload.Location)
	if !ok {
		config.ErrorStatus("Missing location", http.StatusBadRequest, w, nil)
		return
	}
	if phone, ok := payload.ReporterInfo["phone"]; !ok || phone == nil || fmt.Sprint(phone) == "" {
		config.ErrorStatus("Reporter phone number is required", http.StatusBadRequest, w, nil)
		return
	}

	var fileHeaders []*multipart.FileHeader
	if isMultipart && r.MultipartForm != nil {
		fileHeaders = r.MultipartForm.File["files"]
		if len(fileHeaders) > 10 {
			config.ErrorStatus("Too many files", http.StatusBadRequest, w, nil)
			return
		}
		for _, fh := range fileHeaders {
			if err := validateEvidenceFile(fh); err != nil {
				config.ErrorStatus(err.Error(), http.StatusBadRequest, w, err)
				return
			}
		}
	}

	now := time.Now()
	complaint := models.Complaint{
		ID:           primitive.NewObjectID(),
		CaseNumber:   generateCaseNumber(),
		Type:         payload.Type,
		Category:     payload.Category,
		Title:        payload.Title,
		Description:  payload.Description,
		Location:     location,
		ReporterInfo: payload.ReporterInfo,
		Status:       models.StatusPending,
		Priority:     priorityFor(payload.Type),
		Notes:        []models.Note{},
		CreatedBy:    &actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := c.DB.InsertOne(r.Context(), complaint); err != nil {
		config.ErrorStatus("failed to create complaint", http.StatusInternalServerError, w, err)
		return
	}

	// evidence persistence is best effort once the complaint exists
	savedFiles := []models.EvidenceFileView{}
	for _, fh := range fileHeaders {
		file, err := c.storeEvidenceFile(r, complaint.ID, fh)
		if err != nil {
			zap.S().Errorw("failed to store evidence file",
				"complaintId", complaint.ID.Hex(),
				"file", fh.Filename,
				"error", err)
			continue
		}
		savedFiles = append(savedFiles, evidenceFileView(file))
	}

	if err := c.addTimelineEvent(r, complaint.ID, models.EventCreated, "Complaint submitted", &actorID); err != nil {
		config.ErrorStatus("failed to record timeline event", http.StatusInternalServerError, w, err)
		return
	}

	users := c.usersByID(r.Context(), []primitive.ObjectID{actorID})
	view := complaintView(complaint, users)
	view.Evidence.Files = savedFiles

	b, err := json.Marshal(view)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// GetComplaintsHandler lists complaints with filtering, search,
// sorting and pagination.
func (c Complaint) GetComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := bson.M{}
	for _, field := range []string{"status", "category", "priority"} {
		if v := q.Get(field); v != "" {
			filter[field] = v
		}
	}
	if search := q.Get("search"); search != "" {
		escaped := regexp.QuoteMeta(search)
		pattern := primitive.Regex{Pattern: escaped, Options: "i"}
		filter["$or"] = []bson.M{
			{"title": pattern},
			{"description": pattern},
			{"caseNumber": pattern},
		}
	}
	dateFilter := bson.M{}
	if start, ok := parseDate(q.Get("startDate")); ok {
		dateFilter["$gte"] = start
	}
	if end, ok := parseDate(q.Get("endDate")); ok {
		dateFilter["$lte"] = end
	}
	if len(dateFilter) > 0 {
		filter["createdAt"] = dateFilter
	}

	sortField, sortDir := parseSort(q.Get("sortBy"), q.Get("sortOrder"))

	page := intQueryParam(q.Get("page"), 1)
	limit := intQueryParam(q.Get("limit"), 10)

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	complaints, err := c.DB.Find(r.Context(), filter, opts)
	if err != nil {
		config.ErrorStatus("failed to get complaints", http.StatusInternalServerError, w, err)
		return
	}
	total, err := c.DB.CountDocuments(r.Context(), filter)
	if err != nil {
		config.ErrorStatus("failed to count complaints", http.StatusInternalServerError, w, err)
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	resp := models.ComplaintListResponse{
		Complaints: c.listViews(r, complaints),
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			HasNext:     int64(page*limit) < total,
			HasPrev:     page > 1,
		},
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

// parseSort resolves the sort field and direction from the query.
// A "-" prefix on sortBy means descending; sortOrder overrides the
// direction; unknown fields fall back to newest first.
func parseSort(sortBy, sortOrder string) (string, int) {
	if sortBy == "" {
		sortBy = "-createdAt"
	}
	dir := 1
	if strings.HasPrefix(sortBy, "-") {
		sortBy = strings.TrimPrefix(sortBy, "-")
		dir = -1
	}
	switch sortOrder {
	case "asc":
		dir = 1
	case "desc":
		dir = -1
	}
	if !allowedSortFields[sortBy] {
		return "createdAt", -1
	}
	return sortBy, dir
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func intQueryParam(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// GetComplaintByIDHandler returns one complaint with its full
// timeline and evidence. Notes are flattened to their texts here.
func (c Complaint) GetComplaintByIDHandler(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["complaint_id"]
	oid, err := primitive.ObjectIDFromHex(complaintID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	complaint, err := c.DB.FindOne(r.Context(), bson.M{"_id": oid})
	if err != nil {
		config.ErrorStatus("Complaint not found", http.StatusNotFound, w, err)
		return
	}

	files, err := c.EDB.Find(r.Context(), bson.M{"complaintId": oid})
	if err != nil {
		config.ErrorStatus("failed to get evidence files", http.StatusInternalServerError, w, err)
		return
	}
	events, err := c.TDB.Find(r.Context(), bson.M{"complaintId": oid},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		config.ErrorStatus("failed to get timeline", http.StatusInternalServerError, w, err)
		return
	}

	ids := relatedUserIDs([]models.Complaint{*complaint})
	for i := range events {
		if events[i].UserID != nil {
			ids = append(ids, *events[i].UserID)
		}
	}
	users := c.usersByID(r.Context(), ids)

	view := complaintView(*complaint, users)
	view.Evidence.Files = evidenceFileViews(files)
	view.Evidence.Notes = noteTexts(complaint.Notes)
	view.Timeline = timelineEntryViews(events, users)

	b, err := json.Marshal(view)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func trackFailure(message string) models.TrackResponse {
	return models.TrackResponse{
		Error:    &message,
		Timeline: []models.TimelineEntryView{},
		Evidence: []models.EvidenceFileView{},
	}
}

func writeTrack(w http.ResponseWriter, resp models.TrackResponse) {
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// TrackComplaintHandler is the public case lookup. It always answers
// 200; failures are reported in the body's error field so the
// tracking page renders them inline.
func (c Complaint) TrackComplaintHandler(w http.ResponseWriter, r *http.Request) {
	caseNumber := mux.Vars(r)["case_number"]
	if caseNumber == "" {
		caseNumber = r.URL.Query().Get("caseNumber")
	}
	if unescaped, err := url.QueryUnescape(caseNumber); err == nil {
		caseNumber = unescaped
	}
	caseNumber = strings.TrimSpace(caseNumber)

	if len(caseNumber) < 3 {
		writeTrack(w, trackFailure("Invalid case number"))
		return
	}

	complaint, err := c.DB.FindOne(r.Context(), bson.M{"caseNumber": caseNumber})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			writeTrack(w, trackFailure("Complaint not found"))
			return
		}
		writeTrack(w, trackFailure("Server error"))
		return
	}

	events, err := c.TDB.Find(r.Context(), bson.M{"complaintId": complaint.ID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		writeTrack(w, trackFailure("Server error"))
		return
	}
	files, err := c.EDB.Find(r.Context(), bson.M{"complaintId": complaint.ID})
	if err != nil {
		writeTrack(w, trackFailure("Server error"))
		return
	}

	ids := relatedUserIDs([]models.Complaint{*complaint})
	for i := range events {
		if events[i].UserID != nil {
			ids = append(ids, *events[i].UserID)
		}
	}
	users := c.usersByID(r.Context(), ids)

	view := complaintView(*complaint, users)
	if complaint.AssignedOfficer != nil {
		if u, ok := users[complaint.AssignedOfficer.Hex()]; ok {
			view.AssignedOfficer = trackOfficerRef(u)
		}
	}
	timeline := timelineEntryViews(events, users)
	evidence := evidenceFileViews(files)
	view.Timeline = timeline
	view.Evidence.Files = evidence

	writeTrack(w, models.TrackResponse{
		Complaint: &view,
		Timeline:  timeline,
		Evidence:  evidence,
	})
}

// GetUnassignedComplaintsHandler lists pending complaints with no
// assigned officer, newest first.
func (c Complaint) GetUnassignedComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{
		"status":          models.StatusPending,
		"assignedOfficer": bson.M{"$exists": false},
	}
	complaints, err := c.DB.Find(r.Context(), filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		config.ErrorStatus("failed to get complaints", http.StatusInternalServerError, w, err)
		return
	}
	c.writeComplaintList(w, r, complaints)
}

// GetMyCivilianComplaintsHandler lists the complaints the actor filed
func (c Complaint) GetMyCivilianComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actorObjectID(r)
	if !ok {
		config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, nil)
		return
	}
	complaints, err := c.DB.Find(r.Context(), bson.M{"createdBy": actorID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		config.ErrorStatus("failed to get complaints", http.StatusInternalServerError, w, err)
		return
	}
	c.writeComplaintList(w, r, complaints)
}

// GetMyOperatorComplaintsHandler lists the complaints assigned to the actor
func (c Complaint) GetMyOperatorComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actorObjectID(r)
	if !ok {
		config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, nil)
		return
	}
	complaints, err := c.DB.Find(r.Context(), bson.M{"assignedOfficer": actorID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		config.ErrorStatus("failed to get complaints", http.StatusInternalServerError, w, err)
		return
	}
	c.writeComplaintList(w, r, complaints)
}

func (c Complaint) writeComplaintList(w http.ResponseWriter, r *http.Request, complaints []models.Complaint) {
	b, err := json.Marshal(c.listViews(r, complaints))
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// UpdateComplaintStatusHandler changes a complaint's status and
// records the transition on the timeline.
func (c Complaint) UpdateComplaintStatusHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actorObjectID(r)
	if !ok {
		config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, nil)
		return
	}

	complaintID := mux.Vars(r)["complaint_id"]
	oid, err := primitive.ObjectIDFromHex(complaintID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to unmarshal request body", http.StatusBadRequest, w, err)
		return
	}
	switch req.Status {
	case models.StatusPending, models.StatusAssigned, models.StatusInvestigating, models.StatusResolved, models.StatusClosed:
	default:
		config.ErrorStatus("Invalid status provided", http.StatusBadRequest, w, nil)
		return
	}

	complaint, err := c.DB.FindOne(r.Context(), bson.M{"_id": oid})
	if err != nil {
		config.ErrorStatus("Complaint not found", http.StatusNotFound, w, err)
		return
	}
	oldStatus := complaint.Status

	updated, err := c.DB.UpdateOne(r.Context(), bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}})
	if err != nil {
		config.ErrorStatus("failed to update complaint", http.StatusInternalServerError, w, err)
		return
	}

	eventType := models.EventUpdated
	description := fmt.Sprintf("Status changed from %s to %s",
		strings.ReplaceAll(oldStatus, "_", " "),
		strings.ReplaceAll(req.Status, "_", " "))
	switch req.Status {
	case models.StatusResolved:
		eventType = models.EventResolved
		description = "Case marked as resolved"
	case models.StatusClosed:
		description = "Case marked as closed"
	}
	if req.Note != "" {
		if eventType == models.EventResolved {
			description += " - " + req.Note
		} else {
			description += ": " + req.Note
		}
	}
	if err := c.addTimelineEvent(r, oid, eventType, description, &actorID); err != nil {
		config.ErrorStatus("failed to record timeline event", http.StatusInternalServerError, w, err)
		return
	}

	views := c.listViews(r, []models.Complaint{*updated})
	b, err := json.Marshal(views[0])
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type assignRequest struct {
	OfficerID string `json:"officerId"`
}

// AssignComplaintHandler sets the assigned officer, moves fresh
// pending complaints to assigned, and notifies the creator.
func (c Complaint) AssignComplaintHandler(w http.ResponseWriter, r *http.Request) {
	actor, _ := api.ActorFromContext(r.Context())
	actorID, ok := actorObjectID(r)
	if !ok {
		config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, nil)
		return
	}

	complaintID := mux.Vars(r)["complaint_id"]
	oid, err := primitive.ObjectIDFromHex(complaintID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to unmarshal request body", http.StatusBadRequest, w, err)
		return
	}
	if req.OfficerID == "" {
		config.ErrorStatus("Officer ID is required", http.StatusBadRequest, w, nil)
		return
	}
	officerID, err := primitive.ObjectIDFromHex(req.OfficerID)
	if err != nil {
		config.ErrorStatus("Invalid officer ID provided", http.StatusBadRequest, w, err)
		return
	}

	complaint, err := c.DB.FindOne(r.Context(), bson.M{"_id": oid})
	if err != nil {
		config.ErrorStatus("Complaint not found", http.StatusNotFound, w, err)
		return
	}

	wasUnassigned := complaint.AssignedOfficer == nil
	isSelfAssignment := actor.ID == req.OfficerID

	update := bson.M{"assignedOfficer": officerID, "updatedAt": time.Now()}
	if wasUnassigned && complaint.Status == models.StatusPending {
		update["status"] = models.StatusAssigned
	}
	updated, err := c.DB.UpdateOne(r.Context(), bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		config.ErrorStatus("failed to update complaint", http.StatusInternalServerError, w, err)
		return
	}

	officer, err := c.UDB.FindOne(r.Context(), bson.M{"_id": officerID})
	if err != nil {
		officer = nil
	}

	officerLabel := "Officer ID: " + req.OfficerID
	if officer != nil {
		officerLabel = officer.FullName()
	}
	var description string
	switch {
	case isSelfAssignment && officer != nil:
		description = fmt.Sprintf("Officer %s %s self-assigned to this case", officer.FirstName, officer.LastName)
	case !wasUnassigned:
		description = "Case reassigned from previous officer to " + officerLabel
	default:
		description = "Case assigned to " + officerLabel
	}
	if err := c.addTimelineEvent(r, oid, models.EventAssigned, description, &actorID); err != nil {
		config.ErrorStatus("failed to record timeline event", http.StatusInternalServerError, w, err)
		return
	}

	if complaint.CreatedBy != nil && officer != nil {
		c.notifyCreatorOfAssignment(r, *complaint, *officer, isSelfAssignment)
	}

	views := c.listViews(r, []models.Complaint{*updated})
	b, err := json.Marshal(views[0])
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// notifyCreatorOfAssignment stores the in-app notification, pushes it
// over the websocket hub and kicks off the best effort email. The
// response does not wait on any of it succeeding beyond the store.
func (c Complaint) notifyCreatorOfAssignment(r *http.Request, complaint models.Complaint, officer models.User, isSelfAssignment bool) {
	title := "Officer Assigned to Your Case"
	if isSelfAssignment {
		title = "Officer Self-Assigned to Your Case"
	}
	now := time.Now()
	notification := models.Notification{
		ID:               primitive.NewObjectID(),
		UserID:           *complaint.CreatedBy,
		Type:             "officer_assigned",
		Title:            title,
		Message: fmt.Sprintf("Officer %s %s (Badge: %s) has been assigned to your case %s.",
			officer.FirstName, officer.LastName, officer.BadgeNumber, complaint.CaseNumber),
		RelatedCaseID:    &complaint.ID,
		RelatedOfficerID: &officer.ID,
		IsRead:           false,
		Priority:         models.PriorityMedium,
		Metadata: models.NotificationMetadata{
			CaseNumber:         complaint.CaseNumber,
			OfficerName:        officer.FullName(),
			OfficerBadgeNumber: officer.BadgeNumber,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := c.NDB.InsertOne(r.Context(), notification); err != nil {
		zap.S().Errorw("failed to store assignment notification",
			"complaintId", complaint.ID.Hex(), "error", err)
		return
	}

	if c.Hub != nil {
		c.Hub.Push(complaint.CreatedBy.Hex(), notification)
	}
	if c.Mailer != nil {
		creator, err := c.UDB.FindOne(r.Context(), bson.M{"_id": *complaint.CreatedBy})
		if err == nil && creator.Email != "" {
			go c.sendAssignmentEmail(creator.Email, creator.FullName(), officer.FullName(), complaint.CaseNumber)
		}
	}
}

func (c Complaint) sendAssignmentEmail(toEmail, toName, officerName, caseNumber string) {
	if err := c.Mailer.SendOfficerAssigned(toEmail, toName, officerName, caseNumber); err != nil {
		zap.S().Warnw("failed to send assignment email", "caseNumber", caseNumber, "error", err)
	}
}

type noteRequest struct {
	Note string `json:"note"`
}

// AddNoteHandler appends a note and returns the complaint with note
// authors resolved.
func (c Complaint) AddNoteHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actorObjectID(r)
	if !ok {
		config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, nil)
		return
	}

	complaintID := mux.Vars(r)["complaint_id"]
	oid, err := primitive.ObjectIDFromHex(complaintID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to unmarshal request body", http.StatusBadRequest, w, err)
		return
	}
	text := strings.TrimSpace(req.Note)
	if text == "" {
		config.ErrorStatus("Note text cannot be empty", http.StatusBadRequest, w, nil)
		return
	}

	if _, err := c.DB.FindOne(r.Context(), bson.M{"_id": oid}); err != nil {
		config.ErrorStatus("Complaint not found", http.StatusNotFound, w, err)
		return
	}

	note := models.Note{Text: text, CreatedAt: time.Now(), By: &actorID}
	updated, err := c.DB.UpdateOne(r.Context(), bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"notes": note},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		config.ErrorStatus("failed to update complaint", http.StatusInternalServerError, w, err)
		return
	}

	if err := c.addTimelineEvent(r, oid, models.EventUpdated, "Note added: "+text, &actorID); err != nil {
		config.ErrorStatus("failed to record timeline event", http.StatusInternalServerError, w, err)
		return
	}

	users := c.usersByID(r.Context(), relatedUserIDs([]models.Complaint{*updated}))
	view := complaintView(*updated, users)
	view.Evidence.Notes = resolvedNoteViews(updated.Notes, users)

	b, err := json.Marshal(view)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteComplaintHandler removes a pending complaint owned by the
// actor along with its evidence rows, timeline and notifications.
// The cascade is sequential and not transactional.
func (c Complaint) DeleteComplaintHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := actorObjectID(r)
	if !ok {
		config.ErrorStatus("Authentication required", http.StatusUnauthorized, w, nil)
		return
	}

	complaintID := mux.Vars(r)["complaint_id"]
	oid, err := primitive.ObjectIDFromHex(complaintID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	complaint, err := c.DB.FindOne(r.Context(), bson.M{"_id": oid})
	if err != nil {
		config.ErrorStatus("Complaint not found", http.StatusNotFound, w, err)
		return
	}
	if complaint.CreatedBy == nil || *complaint.CreatedBy != actorID {
		config.ErrorStatus("You can only delete your own complaints", http.StatusForbidden, w, nil)
		return
	}
	if complaint.Status != models.StatusPending {
		config.ErrorStatus("Cannot delete complaint that is already assigned or in progress", http.StatusBadRequest, w, nil)
		return
	}

	if _, err := c.EDB.DeleteMany(r.Context(), bson.M{"complaintId": oid}); err != nil {
		config.ErrorStatus("failed to delete evidence files", http.StatusInternalServerError, w, err)
		return
	}
	if _, err := c.TDB.DeleteMany(r.Context(), bson.M{"complaintId": oid}); err != nil {
		config.ErrorStatus("failed to delete timeline", http.StatusInternalServerError, w, err)
		return
	}
	if _, err := c.NDB.DeleteMany(r.Context(), bson.M{"relatedCaseId": oid}); err != nil {
		config.ErrorStatus("failed to delete notifications", http.StatusInternalServerError, w, err)
		return
	}
	if _, err := c.DB.DeleteOne(r.Context(), bson.M{"_id": oid}); err != nil {
		config.ErrorStatus("failed to delete complaint", http.StatusInternalServerError, w, err)
		return
	}

	b, _ := json.Marshal(models.MessageResponse{Message: "Complaint deleted successfully"})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
