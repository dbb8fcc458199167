package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rpupo63/blogly/errs"
	"github.com/rpupo63/blogly/views"
)

type Responder struct {
	logger   zerolog.Logger
	renderer Renderer
	flashes  flashStore
}

func NewResponder(logger zerolog.Logger, renderer Renderer, flashes flashStore) Responder {
	return Responder{logger, renderer, flashes}
}

// Render writes the named page with a 200 status.
func (r Responder) Render(w http.ResponseWriter, req *http.Request, name string, data views.Data) {
	r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus writes the named page, adding the pending flash message to data.
func (r Responder) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data views.Data) {
	if data == nil {
		data = views.Data{}
	}
	if flash := ctxGetFlash(req.Context()); flash != "" {
		data["flash"] = flash
	}

	var buf bytes.Buffer
	if err := r.renderer.Render(&buf, name, data); err != nil {
		r.logger.Error().Err(err).Str("template", name).Str("request_id", ctxGetRequestID(req.Context())).Msg("error rendering template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// Redirect ends a write with a 302 to url.
func (r Responder) Redirect(w http.ResponseWriter, req *http.Request, url string) {
	http.Redirect(w, req, url, http.StatusFound)
}

// RedirectWithFlash redirects and leaves message for the page at url.
func (r Responder) RedirectWithFlash(w http.ResponseWriter, req *http.Request, url, message string) {
	if err := r.flashes.Set(w, message); err != nil {
		r.logger.Warn().Err(err).Msg("error setting flash message")
	}
	r.Redirect(w, req, url)
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError renders the error page with the status carried by err.
// Anything that is not an ApiErr is logged and shown as a 500.
func (r Responder) WriteError(w http.ResponseWriter, req *http.Request, err error) {
	requestID := ctxGetRequestID(req.Context())

	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Str("request_id", requestID).Msg("unexpected error")
		apiErr = errs.NewInternalErrorWithCause("unexpected error", err)
	} else if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("request_id", requestID).Msg(apiErr.GetFullError())
	}

	message := apiErr.Error()
	if apiErr.StatusCode >= http.StatusInternalServerError {
		message = "An unexpected error occurred"
	}

	r.RenderStatus(w, req, apiErr.StatusCode, views.Error, views.Data{
		"status":     apiErr.StatusCode,
		"statusText": http.StatusText(apiErr.StatusCode),
		"message":    message,
		"field":      apiErr.Field,
	})
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
