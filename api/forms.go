package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rpupo63/blogly/errs"
)

const maxFormMemory = 1 << 20

type userForm struct {
	FirstName string
	LastName  string
	ImageURL  string
}

type postForm struct {
	Title   string
	Content string
	TagIDs  []int64
}

type tagForm struct {
	Name string
}

// parseForm reads urlencoded and multipart bodies into r.PostForm.
func parseForm(r *http.Request) error {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return errs.NewMalformedPayloadError("form", err)
	}
	return nil
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostForm.Get(key))
}

type formField struct {
	name  string
	value string
}

// required returns an error naming the first blank field, in the order given.
func required(fields ...formField) error {
	for _, field := range fields {
		if field.value == "" {
			return errs.NewMissingRequiredFieldError(field.name)
		}
	}
	return nil
}

func parseUserForm(r *http.Request) (userForm, error) {
	if err := parseForm(r); err != nil {
		return userForm{}, err
	}

	form := userForm{
		FirstName: formValue(r, "first_name"),
		LastName:  formValue(r, "last_name"),
		ImageURL:  formValue(r, "image_url"),
	}
	return form, required(
		formField{"first_name", form.FirstName},
		formField{"last_name", form.LastName},
	)
}

func parsePostForm(r *http.Request) (postForm, error) {
	if err := parseForm(r); err != nil {
		return postForm{}, err
	}

	form := postForm{
		Title:   formValue(r, "title"),
		Content: formValue(r, "content"),
	}
	if err := required(
		formField{"title", form.Title},
		formField{"content", form.Content},
	); err != nil {
		return form, err
	}

	tagIDs, err := parseTagIDs(r.PostForm["tags"])
	if err != nil {
		return form, err
	}
	form.TagIDs = tagIDs
	return form, nil
}

// parseTagIDs converts the repeated tags values, dropping duplicates and keeping first-seen order.
func parseTagIDs(values []string) ([]int64, error) {
	ids := make([]int64, 0, len(values))
	seen := make(map[int64]struct{}, len(values))
	for _, value := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, errs.NewInvalidFieldError("tags", fmt.Sprintf("%q is not an integer", value))
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseTagForm(r *http.Request) (tagForm, error) {
	if err := parseForm(r); err != nil {
		return tagForm{}, err
	}

	form := tagForm{Name: formValue(r, "name")}
	return form, required(formField{"name", form.Name})
}

// pathID reads a numeric URL parameter. Values that do not fit an int64 are reported as not found.
func pathID(r *http.Request, param, entity string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return 0, errs.NewNotFound(entity)
	}
	return id, nil
}
