package api

import (
	"context"
	"io"

	"github.com/rpupo63/blogly/models"
	"github.com/rpupo63/blogly/views"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler   userHandler
	postHandler   postHandler
	tagHandler    tagHandler
	healthHandler healthHandler
}

type userStore interface {
	FindAll(ctx context.Context) ([]*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

type postStore interface {
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	Add(ctx context.Context, post *models.Post, tags []models.Tag) error
	Update(ctx context.Context, post *models.Post, tags []models.Tag) error
	Delete(ctx context.Context, id int64) error
}

type tagStore interface {
	FindAll(ctx context.Context) ([]*models.Tag, error)
	FindByID(ctx context.Context, id int64) (*models.Tag, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Tag, error)
	Add(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id int64) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Renderer writes a named page. *views.Renderer satisfies it.
type Renderer interface {
	Render(w io.Writer, name string, data views.Data) error
}

// stores groups everything the handlers read from and write to.
type stores struct {
	users userStore
	posts postStore
	tags  tagStore
	db    pinger
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}
