package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mindfulmate/backend/internal/handler/analytics"
	"github.com/mindfulmate/backend/internal/handler/chats"
	"github.com/mindfulmate/backend/internal/handler/live"
	"github.com/mindfulmate/backend/internal/handler/moods"
	sessionHandler "github.com/mindfulmate/backend/internal/handler/session"
	middlewarePkg "github.com/mindfulmate/backend/internal/middleware"
	sessionService "github.com/mindfulmate/backend/internal/service/session"
	"github.com/mindfulmate/backend/internal/store"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(st *store.Store, sess *sessionService.Session) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	moodHandler := moods.New(st)
	chatHandler := chats.New(st)
	turnHandler := sessionHandler.New(sess)
	analyticsHandler := analytics.New(st)
	liveHandler := live.New(sess)

	r.Route("/api", func(api chi.Router) {
		moodHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		turnHandler.RegisterRoutes(api)
		analyticsHandler.RegisterRoutes(api)
		liveHandler.RegisterRoutes(api)
	})

	return r
}
