package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// ValidationErrorResponse carries field-level details for malformed input.
type ValidationErrorResponse struct {
	Error   string       `json:"error" example:"validation failed"`
	Details []FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
