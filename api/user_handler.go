package api

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blogly/models"
	"github.com/rpupo63/blogly/views"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  userStore
}

func newUserHandler(userRepo userStore, renderer Renderer, flashes flashStore) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger, renderer, flashes),
		logger:    logger,
		userRepo:  userRepo,
	}
}

// findUser resolves the {userID} path parameter, reporting 404 when there is no such user
func (h userHandler) findUser(r *http.Request) (*models.User, error) {
	id, err := pathID(r, "userID", "user")
	if err != nil {
		return nil, err
	}

	user, err := h.userRepo.FindByID(r.Context(), id)
	if err != nil {
		return nil, wrapDatabaseError("find", "user", err)
	}
	return user, nil
}

// listUsers renders every user
func (h userHandler) listUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("find", "users", err))
			return
		}

		h.responder.Render(w, r, views.List, views.Data{"users": users})
	}
}

func (h userHandler) newUserForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.Render(w, r, views.NewUser, nil)
	}
}

// createUser adds a user. A blank image_url falls back to the placeholder image.
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := parseUserForm(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		user := models.NewUser(form.FirstName, form.LastName, form.ImageURL)
		if err := h.userRepo.Add(r.Context(), user); err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("create", "user", err))
			return
		}

		h.logger.Info().Int64("userID", user.ID).Msg("user created")
		h.responder.RedirectWithFlash(w, r, "/users", fmt.Sprintf("User %s added.", user.FullName()))
	}
}

func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.findUser(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.Render(w, r, views.Details, views.Data{"user": user})
	}
}

func (h userHandler) editUserForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.findUser(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.Render(w, r, views.EditDetails, views.Data{"user": user})
	}
}

// updateUser overwrites all three fields as submitted, including a blank image_url
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.findUser(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		form, err := parseUserForm(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		user.FirstName = form.FirstName
		user.LastName = form.LastName
		user.ImageURL = form.ImageURL
		if err := h.userRepo.Update(r.Context(), user); err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.RedirectWithFlash(w, r, fmt.Sprintf("/users/%d", user.ID), fmt.Sprintf("User %s updated.", user.FullName()))
	}
}

// deleteUser removes the user along with their posts
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.findUser(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		if err := h.userRepo.Delete(r.Context(), user.ID); err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("delete", "user", err))
			return
		}

		h.logger.Info().Int64("userID", user.ID).Int("posts", len(user.Posts)).Msg("user deleted")
		h.responder.RedirectWithFlash(w, r, "/users", fmt.Sprintf("User %s deleted.", user.FullName()))
	}
}
