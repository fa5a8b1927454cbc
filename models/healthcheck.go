package models

// HealthCheckResponse returns the health check response, exciting stuff
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
