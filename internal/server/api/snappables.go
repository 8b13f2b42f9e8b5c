// Package api provides HTTP API handlers for authoring snappables, their
// snap points, and recorded reference poses.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/cyhunter/handposing/internal/store"
)

// SnappableHandler handles HTTP requests for snappable resources.
type SnappableHandler struct {
	store *store.Store
}

// NewSnappableHandler creates a new SnappableHandler with the given store.
func NewSnappableHandler(s *store.Store) *SnappableHandler {
	return &SnappableHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods. Expected paths: /api/snappables or
// /api/snappables/{id}.
func (h *SnappableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/snappables")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createSnappableRequest struct {
	Name string `json:"name"`
}

type snappableResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listSnappablesResponse struct {
	Snappables []snappableResponse `json:"snappables"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Snappable to a snappableResponse.
func toResponse(s *store.Snappable) snappableResponse {
	return snappableResponse{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/snappables and returns all snappables.
func (h *SnappableHandler) list(w http.ResponseWriter, r *http.Request) {
	snappables, err := h.store.Snappables().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list snappables")
		return
	}

	response := listSnappablesResponse{
		Snappables: make([]snappableResponse, 0, len(snappables)),
	}
	for _, s := range snappables {
		response.Snappables = append(response.Snappables, toResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/snappables/{id} and returns a single snappable.
func (h *SnappableHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	s, err := h.store.Snappables().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Snappable not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get snappable")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(s))
}

// create handles POST /api/snappables and creates a new snappable.
func (h *SnappableHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSnappableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	s := &store.Snappable{
		ID:   uuid.New().String(),
		Name: req.Name,
	}
	if err := h.store.Snappables().Create(s); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create snappable")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(s))
}

// delete handles DELETE /api/snappables/{id} and removes a snappable along
// with its snap points.
func (h *SnappableHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Snappables().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Snappable not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete snappable")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
