package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blogly/config"
	"github.com/rpupo63/blogly/database"
	"github.com/rpupo63/blogly/errs"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(settings config.Settings, db database.Database, renderer Renderer) Server {
	address := net.JoinHostPort("0.0.0.0", settings.Port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(storesFrom(db), renderer,
		withSecretKey(settings.SecretKey),
		withAcceptedOrigins(settings.AcceptedOrigins),
		withStartupTime(startupTime),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
		IdleTimeout:  settings.IdleTimeout,
	}

	return Server{server, startupTime}
}

type router struct {
	secretKey       string
	acceptedOrigins []string
	startupTime     time.Time
}

func withSecretKey(secretKey string) func(*router) {
	return func(r *router) {
		r.secretKey = secretKey
	}
}

func withAcceptedOrigins(origins []string) func(*router) {
	return func(r *router) {
		r.acceptedOrigins = origins
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(s stores, renderer Renderer, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(RequestLoggingMiddleware)
	chiRouter.Use(LogInternalServerErrors)

	if len(router.acceptedOrigins) > 0 {
		chiRouter.Use(cors.Handler(cors.Options{
			AllowedOrigins:   router.acceptedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", requestIDHeader},
			ExposedHeaders:   []string{requestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	flashes := newFlashStore(router.secretKey)
	handlers := initializeHandlers(s, renderer, flashes, router.startupTime)

	notFound := NewResponder(log.With().Str("handlerName", "router").Logger(), renderer, flashes)
	chiRouter.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound.WriteError(w, r, errs.NewNotFoundError("page not found"))
	})

	chiRouter.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/users", http.StatusFound)
	})
	chiRouter.Get("/health", handlers.healthHandler.health())

	chiRouter.Group(func(r chi.Router) {
		r.Use(flashes.middleware)
		setupPageRoutes(r, handlers)
	})

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
