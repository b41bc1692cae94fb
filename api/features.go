package api

import (
	"net/http"

	"github.com/0xalexb/confedit/schema"
	"github.com/0xalexb/confedit/store"

	"github.com/go-chi/chi/v5"
)

// ScreensResponse is the typed view of the feature document.
type ScreensResponse struct {
	Screens      []schema.FeatureScreen `json:"screens"`
	GlobalConfig []schema.ConfigOption  `json:"globalConfig"`
}

// OptionRequest addresses a config option. Screen is ignored for the global scope.
type OptionRequest struct {
	Scope  string `json:"scope"`
	Screen string `json:"screen,omitempty"`
	Option string `json:"option"`
	Value  *bool  `json:"value,omitempty"`
}

func (req OptionRequest) scope() (schema.Scope, error) {
	if req.Scope == "" {
		return schema.ScopeScreen, nil
	}

	return schema.ParseScope(req.Scope)
}

// getScreens handles GET /api/features/screens
func (h *Handler) getScreens(w http.ResponseWriter, _ *http.Request) {
	snap, err := h.store.Current(schema.Features)
	if err != nil {
		writeEditError(w, err)

		return
	}

	screens, err := snap.Screens()
	if err != nil {
		writeEditError(w, err)

		return
	}

	global, err := snap.GlobalConfig()
	if err != nil {
		writeEditError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, ScreensResponse{Screens: screens, GlobalConfig: global})
}

// toggleScreen handles POST /api/features/screens/{screen}/toggle
func (h *Handler) toggleScreen(w http.ResponseWriter, r *http.Request) {
	screen := chi.URLParam(r, "screen")

	h.dispatch(w, r, schema.Features, store.ToggleScreenVisibility{Screen: screen})
}

// setOption handles PUT /api/features/options
func (h *Handler) setOption(w http.ResponseWriter, r *http.Request) {
	var req OptionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Value == nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "value is required")

		return
	}

	scope, err := req.scope()
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	h.dispatch(w, r, schema.Features, store.SetOptionValue{
		Scope:  scope,
		Screen: req.Screen,
		Option: req.Option,
		Value:  *req.Value,
	})
}

// toggleOption handles POST /api/features/options/toggle
func (h *Handler) toggleOption(w http.ResponseWriter, r *http.Request) {
	var req OptionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	scope, err := req.scope()
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	h.dispatch(w, r, schema.Features, store.ToggleOption{
		Scope:  scope,
		Screen: req.Screen,
		Option: req.Option,
	})
}
