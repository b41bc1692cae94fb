package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// download handles GET /api/downloads/{handle}. The export is released once it was sent.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "handle")

	handle, data, err := h.sink.Open(r.Context(), id)
	if err != nil {
		writeEditError(w, err)

		return
	}

	defer func() {
		if err := h.sink.Release(r.Context(), handle); err != nil {
			h.logger.WarnContext(r.Context(), "release after download failed",
				"handle", handle.ID, "error", err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", handle.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		h.logger.WarnContext(r.Context(), "download interrupted", "handle", handle.ID, "error", err)
	}
}

// discardDownload handles DELETE /api/downloads/{handle}
func (h *Handler) discardDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "handle")

	handle, _, err := h.sink.Open(r.Context(), id)
	if err != nil {
		writeEditError(w, err)

		return
	}

	if err := h.sink.Release(r.Context(), handle); err != nil {
		writeEditError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
