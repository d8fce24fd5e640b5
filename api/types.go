package api

import "github.com/rpupo63/tutorial-blog-backend/models"

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// PostCollection is the body of every post listing.
type PostCollection struct {
	Posts    []*models.Post `json:"posts"`
	Total    int            `json:"total"`
	Messages []string       `json:"messages,omitempty"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Started string `json:"started"`
	Uptime  string `json:"uptime"`
}
