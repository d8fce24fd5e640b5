package api

import (
	"time"

	"github.com/rpupo63/tutorial-blog-backend/config"
	"github.com/rpupo63/tutorial-blog-backend/database"
	"github.com/rpupo63/tutorial-blog-backend/render"
	"github.com/rpupo63/tutorial-blog-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	postHandler     postHandler
	taxonomyHandler taxonomyHandler
	statusHandler   statusHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, cfg config.Config, clock services.Clock, startupTime time.Time) *routeHandlers {
	page := render.NewMarkdown(true, render.WithHighlightStyle(cfg.HighlightStyle))
	summary := render.NewMarkdown(false, render.WithHighlightStyle(cfg.HighlightStyle))

	posts := services.NewPostService(db.PostRepo(), db.CategoryRepo(), db.TagRepo(), page, summary, clock)
	taxonomy := services.NewTaxonomyService(db.CategoryRepo(), db.TagRepo())

	return &routeHandlers{
		postHandler:     newPostHandler(posts),
		taxonomyHandler: newTaxonomyHandler(taxonomy, posts),
		statusHandler:   newStatusHandler(startupTime, page),
	}
}
