package api

import "github.com/skillwave-academy/content-service/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogPostHandler    blogPostHandler
	materialHandler    materialHandler
	certificateHandler certificateHandler
}

// Success envelopes. The payload key depends on the entity family; the
// frontend reads data for posts, material(s) for uploads and
// certificate(s) for completions.

type errorResponse struct {
	Error string `json:"error"`
}

type blogPostResponse struct {
	Success bool             `json:"success"`
	Data    *models.BlogPost `json:"data"`
	Message string           `json:"message,omitempty"`
}

type blogPostListResponse struct {
	Success bool              `json:"success"`
	Data    []models.BlogPost `json:"data"`
	Total   int               `json:"total"`
}

type materialResponse struct {
	Success  bool             `json:"success"`
	Material *models.Material `json:"material"`
	Message  string           `json:"message,omitempty"`
}

type materialListResponse struct {
	Success   bool              `json:"success"`
	Materials []models.Material `json:"materials"`
	Total     int               `json:"total"`
}

type certificateResponse struct {
	Success     bool                `json:"success"`
	Certificate *models.Certificate `json:"certificate"`
	Message     string              `json:"message,omitempty"`
}

type certificateListResponse struct {
	Success      bool                 `json:"success"`
	Certificates []models.Certificate `json:"certificates"`
	Total        int                  `json:"total"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
