package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sehatlabs/healthchat/internal/config"
	"github.com/sehatlabs/healthchat/internal/handler/chat"
	middlewarePkg "github.com/sehatlabs/healthchat/internal/middleware"
	chatService "github.com/sehatlabs/healthchat/internal/service/chat"
	"github.com/sehatlabs/healthchat/web"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, upstream config.UpstreamConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chat.New(chatSvc, upstream)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(web.Index)
	})

	return r
}
