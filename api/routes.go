package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPageRoutes registers the HTML pages. Ids are digits only so anything else falls through to 404.
func setupPageRoutes(r chi.Router, handlers *routeHandlers) {
	// User Handler endpoints
	r.Get("/users", handlers.userHandler.listUsers())
	r.Get("/users/new", handlers.userHandler.newUserForm())
	r.Post("/users/new", handlers.userHandler.createUser())
	r.Get("/users/{userID:[0-9]+}", handlers.userHandler.getUser())
	r.Get("/users/{userID:[0-9]+}/edit", handlers.userHandler.editUserForm())
	r.Post("/users/{userID:[0-9]+}/edit", handlers.userHandler.updateUser())
	r.Post("/users/{userID:[0-9]+}/delete", handlers.userHandler.deleteUser())

	// Post Handler endpoints
	r.Get("/users/{userID:[0-9]+}/posts/new", handlers.postHandler.newPostForm())
	r.Post("/users/{userID:[0-9]+}/posts/new", handlers.postHandler.createPost())
	r.Get("/posts/{postID:[0-9]+}", handlers.postHandler.getPost())
	r.Get("/posts/{postID:[0-9]+}/edit", handlers.postHandler.editPostForm())
	r.Post("/posts/{postID:[0-9]+}/edit", handlers.postHandler.updatePost())
	r.Post("/posts/{postID:[0-9]+}/delete", handlers.postHandler.deletePost())

	// Tag Handler endpoints
	r.Get("/tags", handlers.tagHandler.listTags())
	r.Get("/tags/new", handlers.tagHandler.newTagForm())
	r.Post("/tags/new", handlers.tagHandler.createTag())
	r.Get("/tags/{tagID:[0-9]+}", handlers.tagHandler.getTag())
	r.Get("/tags/{tagID:[0-9]+}/edit", handlers.tagHandler.editTagForm())
	r.Post("/tags/{tagID:[0-9]+}/edit", handlers.tagHandler.updateTag())
	r.Post("/tags/{tagID:[0-9]+}/delete", handlers.tagHandler.deleteTag())
}
