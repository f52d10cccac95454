package api

import (
	"time"

	"github.com/rpupo63/blog-catalog-backend/config"
	"github.com/rpupo63/blog-catalog-backend/database"
	"github.com/rpupo63/blog-catalog-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, storage *services.ImageStorage, c map[string]string, startupTime time.Time) *routeHandlers {
	// A nil *ImageStorage must stay a nil interface so handlers can
	// branch on it.
	var images imageStorage
	if storage != nil {
		images = storage
	}

	environment := config.GetString(c, "APP_ENV", "development")

	return &routeHandlers{
		blogPostHandler: newBlogPostHandler(database.BlogPostRepo(), images),
		healthHandler:   newHealthHandler(environment, startupTime),
	}
}
