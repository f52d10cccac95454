package api

import (
	"github.com/go-chi/chi/v5"
)

// setupBlogRoutes registers the blog catalog endpoints. Static paths
// are declared ahead of the {blogID} pattern so they are never
// shadowed by it.
func setupBlogRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.healthHandler.status())

	r.Route("/api/blogs", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/fetch", handlers.blogPostHandler.getAllBlogs())
		r.Get("/published", handlers.blogPostHandler.getPublishedBlogs())
		r.Get("/tags", handlers.blogPostHandler.getTags())
		r.Get("/authors", handlers.blogPostHandler.getAuthors())

		r.Post("/create", handlers.blogPostHandler.createBlog())
		r.Post("/upload-image", handlers.blogPostHandler.uploadImage())

		r.Get("/{blogID}", handlers.blogPostHandler.getBlog())
		r.Put("/{blogID}", handlers.blogPostHandler.updateBlog())
		r.Delete("/{blogID}", handlers.blogPostHandler.deleteBlog())
		r.Post("/{blogID}/view", handlers.blogPostHandler.incrementBlogViews())
	})
}
