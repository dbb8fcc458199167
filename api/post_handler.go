package api

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/blogly/models"
	"github.com/rpupo63/blogly/views"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	postRepo  postStore
	userRepo  userStore
	tagRepo   tagStore
}

func newPostHandler(postRepo postStore, userRepo userStore, tagRepo tagStore, renderer Renderer, flashes flashStore) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger, renderer, flashes),
		logger:    logger,
		postRepo:  postRepo,
		userRepo:  userRepo,
		tagRepo:   tagRepo,
	}
}

func (h postHandler) findPost(r *http.Request) (*models.Post, error) {
	id, err := pathID(r, "postID", "post")
	if err != nil {
		return nil, err
	}

	post, err := h.postRepo.FindByID(r.Context(), id)
	if err != nil {
		return nil, wrapDatabaseError("find", "post", err)
	}
	return post, nil
}

// resolveTags looks up the submitted tag ids. Ids with no tag are dropped.
func (h postHandler) resolveTags(r *http.Request, ids []int64) ([]models.Tag, error) {
	tags, err := h.tagRepo.FindByIDs(r.Context(), ids)
	if err != nil {
		return nil, wrapDatabaseError("find", "tags", err)
	}
	return tags, nil
}

// newPostForm renders the post form for a user with every tag to pick from
func (h postHandler) newPostForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "userID", "user")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		var (
			user *models.User
			tags []*models.Tag
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			found, err := h.userRepo.FindByID(ctx, userID)
			if err != nil {
				return wrapDatabaseError("find", "user", err)
			}
			user = found
			return nil
		})
		g.Go(func() error {
			found, err := h.tagRepo.FindAll(ctx)
			if err != nil {
				return wrapDatabaseError("find", "tags", err)
			}
			tags = found
			return nil
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.Render(w, r, views.NewPost, views.Data{"user": user, "tags": tags})
	}
}

// createPost adds a post for the user in the path with the selected tags
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "userID", "user")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		user, err := h.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("find", "user", err))
			return
		}

		form, err := parsePostForm(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		tags, err := h.resolveTags(r, form.TagIDs)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		post := &models.Post{
			Title:   form.Title,
			Content: form.Content,
			UserID:  user.ID,
		}
		if err := h.postRepo.Add(r.Context(), post, tags); err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("create", "post", err))
			return
		}

		h.logger.Info().Int64("postID", post.ID).Int64("userID", user.ID).Int("tags", len(tags)).Msg("post created")
		h.responder.RedirectWithFlash(w, r, fmt.Sprintf("/users/%d", user.ID), fmt.Sprintf("Post %q added.", post.Title))
	}
}

func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.findPost(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.Render(w, r, views.PostDetails, views.Data{"post": post})
	}
}

// editPostForm renders the post form with its current tags checked
func (h postHandler) editPostForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathID(r, "postID", "post")
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		var (
			post *models.Post
			tags []*models.Tag
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			found, err := h.postRepo.FindByID(ctx, postID)
			if err != nil {
				return wrapDatabaseError("find", "post", err)
			}
			post = found
			return nil
		})
		g.Go(func() error {
			found, err := h.tagRepo.FindAll(ctx)
			if err != nil {
				return wrapDatabaseError("find", "tags", err)
			}
			tags = found
			return nil
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.Render(w, r, views.EditPost, views.Data{"post": post, "tags": tags})
	}
}

// updatePost overwrites title and content and replaces the tag set in one transaction
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.findPost(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		form, err := parsePostForm(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		tags, err := h.resolveTags(r, form.TagIDs)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		post.Title = form.Title
		post.Content = form.Content
		if err := h.postRepo.Update(r.Context(), post, tags); err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("update", "post", err))
			return
		}

		h.responder.RedirectWithFlash(w, r, fmt.Sprintf("/posts/%d", post.ID), fmt.Sprintf("Post %q updated.", post.Title))
	}
}

// deletePost removes the post and sends the visitor back to its author
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.findPost(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		if err := h.postRepo.Delete(r.Context(), post.ID); err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("delete", "post", err))
			return
		}

		h.responder.RedirectWithFlash(w, r, fmt.Sprintf("/users/%d", post.UserID), fmt.Sprintf("Post %q deleted.", post.Title))
	}
}
