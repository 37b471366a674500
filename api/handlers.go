package api

import (
	"github.com/go-playground/validator/v10"
)

// initializeHandlers creates all handlers over the shared storage
// capabilities.
func initializeHandlers(deps Dependencies) *routeHandlers {
	validate := validator.New()
	idx := deps.Indexes

	return &routeHandlers{
		blogPostHandler:    newBlogPostHandler(deps.Store, idx, validate),
		materialHandler:    newMaterialHandler(deps.Store, idx, deps.Gateway, deps.Buckets.CourseMaterials),
		certificateHandler: newCertificateHandler(deps.Store, idx, validate),
	}
}
