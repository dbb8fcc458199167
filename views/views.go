// Package views renders the HTML pages of the site from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Render.
const (
	List        = "list"
	NewUser     = "new_user"
	Details     = "details"
	EditDetails = "edit_details"
	NewPost     = "new_post"
	EditPost    = "edit_post"
	PostDetails = "post_details"
	Tags        = "tags"
	TagDetails  = "tag_details"
	NewTag      = "new_tag"
	EditTag     = "edit_tag"
	Error       = "error"
)

// Pages lists every page Render knows about.
var Pages = []string{
	List, NewUser, Details, EditDetails,
	NewPost, EditPost, PostDetails,
	Tags, TagDetails, NewTag, EditTag,
	Error,
}

// Data is the context handed to a page, keyed by entity name (users, user, tags, tag, post).
type Data map[string]any

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		return t.Format("Mon Jan 2, 2006 3:04 PM")
	},
}

// Renderer holds one parsed template set per page, each layered on the base layout.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parse base layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(Pages))
	for _, name := range Pages {
		layout, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base layout for %s: %w", name, err)
		}
		page, err := layout.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = page
	}

	return &Renderer{pages: pages}, nil
}

// Render executes the named page into w. Nothing is written when execution fails.
func (r *Renderer) Render(w io.Writer, name string, data Data) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
