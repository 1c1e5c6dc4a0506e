package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/261361-VetNurse/Backend/internal/model"
)

// ItemStore is the service surface the handlers need.
type ItemStore interface {
	List(ctx context.Context) ([]*model.ItemResponse, error)
	GetByID(ctx context.Context, id string) (*model.ItemResponse, error)
	Create(ctx context.Context, req *model.CreateItemRequest) (*model.ItemResponse, error)
	Update(ctx context.Context, id string, req *model.UpdateItemRequest) (*model.ItemResponse, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Handler handles HTTP requests for items.
type Handler struct {
	store      ItemStore
	log        zerolog.Logger
	appVersion string
}

// NewHandler creates a Handler with dependencies.
func NewHandler(store ItemStore, log zerolog.Logger, appVersion string) *Handler {
	return &Handler{store: store, log: log, appVersion: appVersion}
}

// Register attaches the handler's routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.rootHandler)
	mux.HandleFunc("/items", h.itemsHandler)
	mux.HandleFunc("/items/", h.itemHandler)
}

// rootHandler serves the welcome payload on GET /.
func (h *Handler) rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to Backend API",
		"version": h.appVersion,
	})
}

// itemsHandler routes requests without ID: GET for list, POST for create.
func (h *Handler) itemsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListItems(w, r)
	case http.MethodPost:
		h.handleCreateItem(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	}
}

// itemHandler routes requests with ID: GET, PUT, DELETE.
func (h *Handler) itemHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/items/")
	if id == "" {
		writeError(w, http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.handleGetItem(w, r, id)
	case http.MethodPut:
		h.handleUpdateItem(w, r, id)
	case http.MethodDelete:
		h.handleDeleteItem(w, r, id)
	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	}
}

// handleListItems processes GET /items. Results are capped at 100 with no
// pagination cursor.
func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("error listing items")
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleGetItem processes GET /items/{id}.
func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request, id string) {
	item, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "error getting item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleCreateItem processes POST /items.
func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req model.CreateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item, err := h.store.Create(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err, "error creating item")
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/items/%s", item.ID))
	writeJSON(w, http.StatusCreated, item)
}

// handleUpdateItem processes PUT /items/{id}.
func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request, id string) {
	var req model.UpdateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item, err := h.store.Update(r.Context(), id, &req)
	if err != nil {
		h.writeServiceError(w, err, "error updating item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleDeleteItem processes DELETE /items/{id}.
func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request, id string) {
	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("error deleting item")
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// writeServiceError maps a service error to an HTTP response.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg(logMsg)
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// decodeBody decodes a single JSON object into dst, rejecting unknown fields
// and trailing content. It writes the error response itself and reports
// whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request payload: %v", err))
		return false
	}
	if err := ensureSingleJSON(dec); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// ensureSingleJSON ensures only a single JSON object is in the request body.
func ensureSingleJSON(dec *json.Decoder) error {
	if t, err := dec.Token(); err != io.EOF || t != nil {
		return fmt.Errorf("request body must only contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
