package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	developerHandler developerHandler
	projectHandler   projectHandler
	healthHandler    healthHandler
	guards           guards
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Message string `json:"message" example:"Developer not found"`
	Field   string `json:"field,omitempty" example:"preferredOS"`
	Details string `json:"details,omitempty" example:"unexpected keys: age"`
}
