package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the content endpoints. Listing posts and reading a
// single post are public; everything that writes, and everything touching
// course materials or certificates, sits behind the auth middleware.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", healthCheck)
		r.Get("/blog-posts", handlers.blogPostHandler.getAllBlogPosts())
		r.Get("/blog-posts/{id}", handlers.blogPostHandler.getBlogPost())
	})

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Post("/blog-posts", handlers.blogPostHandler.createBlogPost())
		r.Put("/blog-posts/{id}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/blog-posts/{id}", handlers.blogPostHandler.deleteBlogPost())

		r.Post("/upload-material", handlers.materialHandler.uploadMaterial())
		r.Get("/course/{courseID}/materials", handlers.materialHandler.getCourseMaterials())
		r.Delete("/material/{materialID}", handlers.materialHandler.deleteMaterial())

		r.Post("/generate-certificate", handlers.certificateHandler.generateCertificate())
		r.Get("/certificates", handlers.certificateHandler.getCertificates())
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(`{"status":"ok"}`))
}
