package api

import (
	"time"

	"github.com/rpupo63/blogly/database"
)

func storesFrom(db database.Database) stores {
	return stores{
		users: db.UserRepo(),
		posts: db.PostRepo(),
		tags:  db.TagRepo(),
		db:    db,
	}
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(s stores, renderer Renderer, flashes flashStore, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		userHandler:   newUserHandler(s.users, renderer, flashes),
		postHandler:   newPostHandler(s.posts, s.users, s.tags, renderer, flashes),
		tagHandler:    newTagHandler(s.tags, renderer, flashes),
		healthHandler: newHealthHandler(s.db, renderer, startupTime),
	}
}
