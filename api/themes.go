package api

import (
	"net/http"
	"strconv"

	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/schema"
	"github.com/0xalexb/confedit/store"

	"github.com/go-chi/chi/v5"
)

// ThemesResponse is the typed view of the theme document.
type ThemesResponse struct {
	Themes      []schema.ThemeEntry `json:"themes"`
	Passthrough []string            `json:"passthrough"`
}

// ThemeFieldRequest edits one token. Path is relative to the theme, e.g. "colors.primary",
// or the document path listed by GET /api/themes/fields, e.g. "themes[0].colors.primary",
// whose index must match the route. Value is the text typed into the control.
type ThemeFieldRequest struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// getThemes handles GET /api/themes/entries
func (h *Handler) getThemes(w http.ResponseWriter, _ *http.Request) {
	snap, err := h.store.Current(schema.Themes)
	if err != nil {
		writeEditError(w, err)

		return
	}

	themes, err := snap.Themes()
	if err != nil {
		writeEditError(w, err)

		return
	}

	passthrough := snap.Passthrough()
	if passthrough == nil {
		passthrough = []string{}
	}

	writeJSON(w, http.StatusOK, ThemesResponse{Themes: themes, Passthrough: passthrough})
}

// setThemeField handles PATCH /api/themes/{index}
func (h *Handler) setThemeField(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "theme index must be an integer")

		return
	}

	var req ThemeFieldRequest
	if !decodeBody(w, r, &req) {
		return
	}

	path, err := document.ParsePath(req.Path)
	if err != nil {
		writeEditError(w, err)

		return
	}

	if listed, rel, ok := schema.ThemeRelative(path); ok {
		if listed != index {
			writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "path names theme "+strconv.Itoa(listed))

			return
		}

		path = rel
	}

	h.dispatch(w, r, schema.Themes, store.SetThemeField{
		Theme: index,
		Path:  path,
		Raw:   req.Value,
	})
}
