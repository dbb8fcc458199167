package api

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blogly/errs"
	"github.com/rpupo63/blogly/models"
	"github.com/rpupo63/blogly/views"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   tagStore
}

func newTagHandler(tagRepo tagStore, renderer Renderer, flashes flashStore) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger, renderer, flashes),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

func (h tagHandler) findTag(r *http.Request) (*models.Tag, error) {
	id, err := pathID(r, "tagID", "tag")
	if err != nil {
		return nil, err
	}

	tag, err := h.tagRepo.FindByID(r.Context(), id)
	if err != nil {
		return nil, wrapDatabaseError("find", "tag", err)
	}
	return tag, nil
}

func (h tagHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("find", "tags", err))
			return
		}

		h.responder.Render(w, r, views.Tags, views.Data{"tags": tags})
	}
}

func (h tagHandler) newTagForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.Render(w, r, views.NewTag, nil)
	}
}

// createTag adds a tag. A name already in use is a 409.
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := parseTagForm(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		tag := &models.Tag{Name: form.Name}
		if err := h.tagRepo.Add(r.Context(), tag); err != nil {
			h.responder.WriteError(w, r, tagSaveError("create", tag.Name, err))
			return
		}

		h.responder.RedirectWithFlash(w, r, "/tags", fmt.Sprintf("Tag %q added.", tag.Name))
	}
}

func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, err := h.findTag(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.Render(w, r, views.TagDetails, views.Data{"tag": tag})
	}
}

func (h tagHandler) editTagForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, err := h.findTag(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		h.responder.Render(w, r, views.EditTag, views.Data{"tag": tag})
	}
}

// updateTag renames the tag in place; its posts keep it
func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, err := h.findTag(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		form, err := parseTagForm(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		previous := tag.Name
		tag.Name = form.Name
		if err := h.tagRepo.Update(r.Context(), tag); err != nil {
			h.responder.WriteError(w, r, tagSaveError("update", tag.Name, err))
			return
		}

		h.responder.RedirectWithFlash(w, r, "/tags", fmt.Sprintf("Tag %q renamed to %q.", previous, tag.Name))
	}
}

// deleteTag removes the tag and its links to posts; the posts stay
func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, err := h.findTag(r)
		if err != nil {
			h.responder.WriteError(w, r, err)
			return
		}

		if err := h.tagRepo.Delete(r.Context(), tag.ID); err != nil {
			h.responder.WriteError(w, r, wrapDatabaseError("delete", "tag", err))
			return
		}

		h.responder.RedirectWithFlash(w, r, "/tags", fmt.Sprintf("Tag %q deleted.", tag.Name))
	}
}

// tagSaveError names the clashing tag when the unique index rejects a save.
func tagSaveError(operation, name string, cause error) error {
	err := wrapDatabaseError(operation, "tag", cause)
	if errs.IsAlreadyExists(err) {
		return errs.NewConflictError(fmt.Sprintf("tag %q already exists", name))
	}
	return err
}
