package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers public reads and token-protected writes
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// health probes and the stylesheet are not request-logged
	r.Get("/health", handlers.statusHandler.health())
	r.Get("/highlight.css", handlers.statusHandler.highlightCSS())

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Reader endpoints
		r.Get("/posts", handlers.postHandler.getAllPosts())
		r.Get("/posts/{postID}", handlers.postHandler.getPost())
		r.Get("/archives/{year}/{month}", handlers.postHandler.getArchive())
		r.Get("/search", handlers.postHandler.search())
		r.Get("/categories", handlers.taxonomyHandler.getCategories())
		r.Get("/categories/{categoryID}/posts", handlers.taxonomyHandler.getCategoryPosts())
		r.Get("/tags", handlers.taxonomyHandler.getTags())
		r.Get("/tags/{tagID}/posts", handlers.taxonomyHandler.getTagPosts())

		// Author endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/posts", handlers.postHandler.createPost())
			r.Put("/posts/{postID}", handlers.postHandler.updatePost())
			r.Delete("/posts/{postID}", handlers.postHandler.deletePost())
			r.Post("/categories", handlers.taxonomyHandler.createCategory())
			r.Delete("/categories/{categoryID}", handlers.taxonomyHandler.deleteCategory())
			r.Post("/tags", handlers.taxonomyHandler.createTag())
			r.Delete("/tags/{tagID}", handlers.taxonomyHandler.deleteTag())
		})
	})
}
