package models

// MessageResponse is the body written for every failure response and
// for mutation acknowledgements that only carry a message.
type MessageResponse struct {
	Message string `json:"message"`
}
