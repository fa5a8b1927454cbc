package handlers

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dipto6969/Police-Positive/models"
)

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// fileTypeFor buckets a mimetype into the coarse type shown in the UI
func fileTypeFor(mimetype string) string {
	switch {
	case strings.HasPrefix(mimetype, "image/"):
		return "image"
	case strings.HasPrefix(mimetype, "video/"):
		return "video"
	case strings.HasPrefix(mimetype, "audio/"):
		return "audio"
	default:
		return "document"
	}
}

func evidenceFileView(f models.EvidenceFile) models.EvidenceFileView {
	return models.EvidenceFileView{
		ID:         f.ID.Hex(),
		Name:       f.OriginalName,
		Type:       fileTypeFor(f.Mimetype),
		URL:        "/uploads/" + f.Filename,
		Size:       f.Size,
		UploadedAt: isoTime(f.CreatedAt),
	}
}

func evidenceFileViews(files []models.EvidenceFile) []models.EvidenceFileView {
	views := make([]models.EvidenceFileView, 0, len(files))
	for _, f := range files {
		views = append(views, evidenceFileView(f))
	}
	return views
}

// timelineEntryView resolves the acting user's display name, falling
// back to "System" for events recorded without one.
func timelineEntryView(e models.TimelineEvent, users map[string]models.User) models.TimelineEntryView {
	view := models.TimelineEntryView{
		ID:          e.ID.Hex(),
		Type:        e.Type,
		Description: e.Description,
		Timestamp:   isoTime(e.CreatedAt),
		UserName:    "System",
	}
	if e.UserID != nil {
		id := e.UserID.Hex()
		view.UserID = &id
		if u, ok := users[id]; ok {
			view.UserName = u.FullName()
		}
	}
	return view
}

func timelineEntryViews(events []models.TimelineEvent, users map[string]models.User) []models.TimelineEntryView {
	views := make([]models.TimelineEntryView, 0, len(events))
	for _, e := range events {
		views = append(views, timelineEntryView(e, users))
	}
	return views
}

// noteViews renders notes with By as the author's hex id (or nil)
func noteViews(notes []models.Note) []models.NoteView {
	views := make([]models.NoteView, 0, len(notes))
	for _, n := range notes {
		v := models.NoteView{Text: n.Text, CreatedAt: isoTime(n.CreatedAt)}
		if n.By != nil {
			v.By = n.By.Hex()
		}
		views = append(views, v)
	}
	return views
}

// resolvedNoteViews renders notes with By expanded to the author block
func resolvedNoteViews(notes []models.Note, users map[string]models.User) []models.NoteView {
	views := make([]models.NoteView, 0, len(notes))
	for _, n := range notes {
		v := models.NoteView{Text: n.Text, CreatedAt: isoTime(n.CreatedAt)}
		if n.By != nil {
			if u, ok := users[n.By.Hex()]; ok {
				v.By = models.NoteAuthor{ID: u.ID.Hex(), Name: u.FullName(), Role: u.Role}
			} else {
				v.By = n.By.Hex()
			}
		}
		views = append(views, v)
	}
	return views
}

// noteTexts renders notes as their bare texts (by-id endpoint shape)
func noteTexts(notes []models.Note) []string {
	texts := make([]string, 0, len(notes))
	for _, n := range notes {
		texts = append(texts, n.Text)
	}
	return texts
}

func officerRef(u models.User) *models.OfficerRef {
	return &models.OfficerRef{
		ID:          u.ID.Hex(),
		Name:        u.FullName(),
		BadgeNumber: u.BadgeNumber,
	}
}

// trackOfficerRef additionally exposes the split name fields used by
// the public tracking page.
func trackOfficerRef(u models.User) *models.OfficerRef {
	ref := officerRef(u)
	ref.FirstName = u.FirstName
	ref.LastName = u.LastName
	return ref
}

// complaintView builds the standard API shape for one complaint.
// Evidence notes carry author ids; the caller overrides Evidence or
// Timeline where an endpoint needs a different shape.
func complaintView(comp models.Complaint, users map[string]models.User) models.ComplaintView {
	view := models.ComplaintView{
		ID:           comp.ID.Hex(),
		CaseNumber:   comp.CaseNumber,
		Type:         comp.Type,
		Category:     comp.Category,
		Title:        comp.Title,
		Description:  comp.Description,
		Location:     comp.Location,
		ReporterInfo: comp.ReporterInfo,
		Status:       comp.Status,
		Priority:     comp.Priority,
		Evidence: models.EvidenceView{
			Files: []models.EvidenceFileView{},
			Notes: noteViews(comp.Notes),
		},
		Timeline:  []models.TimelineEntryView{},
		CreatedAt: isoTime(comp.CreatedAt),
		UpdatedAt: isoTime(comp.UpdatedAt),
	}
	if view.ReporterInfo == nil {
		view.ReporterInfo = map[string]interface{}{}
	}
	if comp.AssignedOfficer != nil {
		if u, ok := users[comp.AssignedOfficer.Hex()]; ok {
			view.AssignedOfficer = officerRef(u)
		}
	}
	if comp.CreatedBy != nil {
		view.CreatedBy = comp.CreatedBy.Hex()
	}
	return view
}

// relatedUserIDs collects the user ids a batch of complaints refers to
// so they can be resolved with one query.
func relatedUserIDs(complaints []models.Complaint) []primitive.ObjectID {
	seen := map[string]bool{}
	var ids []primitive.ObjectID
	add := func(id *primitive.ObjectID) {
		if id == nil || seen[id.Hex()] {
			return
		}
		seen[id.Hex()] = true
		ids = append(ids, *id)
	}
	for i := range complaints {
		add(complaints[i].AssignedOfficer)
		add(complaints[i].CreatedBy)
		for j := range complaints[i].Notes {
			add(complaints[i].Notes[j].By)
		}
	}
	return ids
}

// usersByID resolves a set of user ids into a hex-id keyed map.
// Lookup failures degrade to unpopulated views rather than errors.
func (c Complaint) usersByID(ctx context.Context, ids []primitive.ObjectID) map[string]models.User {
	users := map[string]models.User{}
	if len(ids) == 0 {
		return users
	}
	rows, err := c.UDB.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return users
	}
	for _, u := range rows {
		users[u.ID.Hex()] = u
	}
	return users
}
