package api

import (
	"log/slog"
	"net/http"

	"github.com/0xalexb/confedit/export"
	"github.com/0xalexb/confedit/listener/middleware"
	"github.com/0xalexb/confedit/schema"
	"github.com/0xalexb/confedit/store"

	"github.com/go-chi/chi/v5"
)

// downloadsPrefix is the route prefix of parked exports.
const downloadsPrefix = "/api/downloads/"

// Params are the collaborators of a Handler. Export and HTTP may be nil.
type Params struct {
	Store  *store.Store
	Sink   *export.MemorySink
	Export *export.Config
	HTTP   *Config
	Logger *slog.Logger
}

// Handler serves the editing API.
type Handler struct {
	store  *store.Store
	sink   *export.MemorySink
	mode   export.Mode
	logger *slog.Logger
	router chi.Router
}

// NewHandler builds the API router. Exports are parked in p.Sink and serialized in
// p.Export.Mode.
func NewHandler(p Params) *Handler {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mode := export.ModeRender
	if p.Export != nil && p.Export.Mode != "" {
		mode = p.Export.Mode
	}

	var httpCfg Config
	if p.HTTP != nil {
		httpCfg = *p.HTTP
	}

	httpCfg.SetDefaults()

	sink := p.Sink
	if sink == nil {
		sink = export.NewMemorySink(export.WithLogger(logger))
	}

	h := &Handler{
		store:  p.Store,
		sink:   sink,
		mode:   mode,
		logger: logger,
		router: chi.NewRouter(),
	}

	h.router.Use(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
		middleware.CORS(httpCfg.AllowedOrigins),
		middleware.MaxRequestSize(httpCfg.MaxBodyBytes),
	)

	h.setupRoutes()

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) setupRoutes() {
	r := h.router

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.listDocuments)

		r.Route("/"+string(schema.Features), func(r chi.Router) {
			h.documentRoutes(r, schema.Features)

			r.Get("/screens", h.getScreens)
			r.Post("/screens/{screen}/toggle", h.toggleScreen)
			r.Put("/options", h.setOption)
			r.Post("/options/toggle", h.toggleOption)
		})

		r.Route("/"+string(schema.Themes), func(r chi.Router) {
			h.documentRoutes(r, schema.Themes)

			r.Get("/entries", h.getThemes)
			r.Patch("/{index}", h.setThemeField)
		})

		r.Route("/downloads/{handle}", func(r chi.Router) {
			r.Get("/", h.download)
			r.Delete("/", h.discardDownload)
		})
	})
}

// documentRoutes registers the routes every document kind shares.
func (h *Handler) documentRoutes(r chi.Router, kind schema.Kind) {
	r.Get("/", h.getDocument(kind))
	r.Get("/fields", h.getFields(kind))
	r.Get("/journal", h.getJournal(kind))
	r.Post("/reset", h.reset(kind))
	r.Post("/export", h.exportDocument(kind))
}
