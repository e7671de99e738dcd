package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/docchat-ai/docchat/internal/http/handlers"
	httpmiddleware "github.com/docchat-ai/docchat/internal/http/middleware"
	"github.com/docchat-ai/docchat/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger         *logging.Logger
	ChatHandler    *handlers.ChatHandler
	DocsHandler    *handlers.DocumentsHandler
	AdminHandler   *handlers.AdminHandler
	MetricsHandler http.Handler

	CORSAllowedOrigins []string

	// Chat and upload routes fan out to metered APIs; when RPS > 0 they
	// are rate limited per IP.
	ChatRateLimitRPS   int
	ChatRateLimitBurst int
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	var limit func(http.Handler) http.Handler
	if cfg.ChatRateLimitRPS > 0 {
		limit = httpmiddleware.RateLimit(float64(cfg.ChatRateLimitRPS), cfg.ChatRateLimitBurst)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/chat", func(r chi.Router) {
		if limit != nil {
			r.Use(limit)
		}
		r.Post("/", cfg.ChatHandler.HandleMessage)
		r.Get("/{sessionID}/history", cfg.ChatHandler.HandleHistory)
	})

	if cfg.DocsHandler != nil {
		r.Group(func(r chi.Router) {
			if limit != nil {
				r.Use(limit)
			}
			r.Post("/documents", cfg.DocsHandler.HandleUpload)
		})
	}

	if cfg.AdminHandler != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Get("/contacts", cfg.AdminHandler.HandleListContacts)
			r.Delete("/appointments/{appointmentID}", cfg.AdminHandler.HandleCancelAppointment)
		})
	}

	return r
}
