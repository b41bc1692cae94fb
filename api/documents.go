package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/export"
	"github.com/0xalexb/confedit/schema"
	"github.com/0xalexb/confedit/store"
)

// DocumentSummary describes one loaded document.
type DocumentSummary struct {
	Kind     string `json:"kind"`
	Version  uint64 `json:"version"`
	Dirty    bool   `json:"dirty"`
	Filename string `json:"filename"`
}

// EditResponse is returned by every accepted edit.
type EditResponse struct {
	DocumentSummary

	Field *schema.EditableField `json:"field,omitempty"`
}

// ExportResponse points at a parked export.
type ExportResponse struct {
	export.Handle

	Mode export.Mode `json:"mode"`
	URL  string      `json:"url"`
}

func summarize(snap *store.Snapshot) DocumentSummary {
	return DocumentSummary{
		Kind:     string(snap.Kind()),
		Version:  snap.Version(),
		Dirty:    snap.Dirty(),
		Filename: snap.Kind().Filename(),
	}
}

func fieldOf(edit document.Edit) schema.EditableField {
	return schema.FieldOf(edit.Path, edit.Value)
}

// listDocuments handles GET /api
func (h *Handler) listDocuments(w http.ResponseWriter, _ *http.Request) {
	kinds := h.store.Kinds()
	docs := make([]DocumentSummary, 0, len(kinds))

	for _, kind := range kinds {
		snap, err := h.store.Current(kind)
		if err != nil {
			writeEditError(w, err)

			return
		}

		docs = append(docs, summarize(snap))
	}

	writeJSON(w, http.StatusOK, docs)
}

// getDocument handles GET /api/{kind}
func (h *Handler) getDocument(kind schema.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap, err := h.store.Current(kind)
		if err != nil {
			writeEditError(w, err)

			return
		}

		body := snap.Render()

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Document-Version", strconv.FormatUint(snap.Version(), 10))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// getFields handles GET /api/{kind}/fields
func (h *Handler) getFields(kind schema.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap, err := h.store.Current(kind)
		if err != nil {
			writeEditError(w, err)

			return
		}

		fields := snap.Fields()
		if fields == nil {
			fields = []schema.EditableField{}
		}

		writeJSON(w, http.StatusOK, fields)
	}
}

// getJournal handles GET /api/{kind}/journal
func (h *Handler) getJournal(kind schema.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap, err := h.store.Current(kind)
		if err != nil {
			writeEditError(w, err)

			return
		}

		journal := snap.Journal()
		edits := make([]schema.EditableField, 0, len(journal))

		for _, edit := range journal {
			edits = append(edits, fieldOf(edit))
		}

		writeJSON(w, http.StatusOK, edits)
	}
}

// reset handles POST /api/{kind}/reset
func (h *Handler) reset(kind schema.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.dispatch(w, r, kind, store.Reset{})
	}
}

// exportDocument handles POST /api/{kind}/export
func (h *Handler) exportDocument(kind schema.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := h.mode

		if q := r.URL.Query().Get("mode"); q != "" {
			parsed, err := export.ParseMode(q)
			if err != nil {
				writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

				return
			}

			mode = parsed
		}

		snap, err := h.store.Current(kind)
		if err != nil {
			writeEditError(w, err)

			return
		}

		data, filename, err := export.Document(snap, mode)
		if err != nil {
			writeEditError(w, err)

			return
		}

		handle, err := h.sink.Acquire(r.Context(), data, filename)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "export failed", "kind", kind, "error", err)
			writeError(w, http.StatusInternalServerError, ErrCodeInternal, "export failed")

			return
		}

		writeJSON(w, http.StatusCreated, ExportResponse{
			Handle: handle,
			Mode:   mode,
			URL:    downloadsPrefix + handle.ID,
		})
	}
}

// dispatch runs cmd and writes the edit response.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, kind schema.Kind, cmd store.Command) {
	snap, err := h.store.Dispatch(r.Context(), kind, cmd)
	if err != nil {
		writeEditError(w, err)

		return
	}

	resp := EditResponse{DocumentSummary: summarize(snap)}

	// The last journal entry of the returned snapshot is the edit cmd made, unless cmd reset it.
	if journal := snap.Journal(); len(journal) > 0 {
		field := fieldOf(journal[len(journal)-1])
		resp.Field = &field
	}

	writeJSON(w, http.StatusOK, resp)
}

// decodeBody reads a JSON request body into v. On failure it writes the error response and
// returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, ErrCodeTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))

		return false
	}

	writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON body: "+err.Error())

	return false
}
