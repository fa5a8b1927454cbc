// Package docs Police Positive API.
//
// Documentation of the Police Positive complaint management API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     SecurityDefinitions:
//     bearer:
//       type: apiKey
//       name: Authorization
//       in: header
//
// swagger:meta
package docs

import (
	"github.com/Dipto6969/Police-Positive/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/complaints complaints listComplaints
// Lists complaints with filters, search and pagination.
// responses:
//   200: complaintListResponse

// A page of complaints with its pagination envelope.
// swagger:response complaintListResponse
type complaintListResponseWrapper struct {
	// in:body
	Body models.ComplaintListResponse
}

// swagger:route GET /api/complaints/track/{case_number} complaints trackComplaint
// Public tracking of a complaint by case number.
// responses:
//   200: trackResponse

// The tracked complaint with its timeline and evidence, or a tracking error.
// swagger:response trackResponse
type trackResponseWrapper struct {
	// in:body
	Body models.TrackResponse
}

// swagger:route GET /api/complaints/notifications notifications listNotifications
// Lists the authenticated user's notifications.
// responses:
//   200: notificationListResponse

// A page of notifications with unread and total counts.
// swagger:response notificationListResponse
type notificationListResponseWrapper struct {
	// in:body
	Body models.NotificationListResponse
}

// swagger:route GET /api/alerts alerts listActiveAlerts
// Lists active safety alerts.
// responses:
//   200: alertListResponse

// The active safety alerts, newest first.
// swagger:response alertListResponse
type alertListResponseWrapper struct {
	// in:body
	Body []models.Alert
}

// Generic error response, carries the human readable message.
// swagger:response errorMessageResponse
type errorMessageResponseWrapper struct {
	// in:body
	Body models.MessageResponse
}
