package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/meridiancms/meridian/internal/logger"
	"github.com/meridiancms/meridian/internal/models"
	"github.com/meridiancms/meridian/internal/store"
)

type ItemHandler struct {
	views      map[string]*View
	content    store.ContentLister
	attributes *store.AttributeRepository
}

func NewItemHandler(views map[string]*View, content store.ContentLister, attributes *store.AttributeRepository) *ItemHandler {
	return &ItemHandler{
		views:      views,
		content:    content,
		attributes: attributes,
	}
}

type CreateItemRequest struct {
	Title      string            `json:"title"`
	Status     models.ItemStatus `json:"status"`
	Attributes map[string]string `json:"attributes"`
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contentType := vars["type"]

	if _, ok := h.views[contentType]; !ok {
		http.Error(w, "unknown content type", http.StatusNotFound)
		return
	}

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		req.Status = models.StatusPublished
	}

	item := &models.Item{
		ID:          uuid.New(),
		ContentType: contentType,
		Title:       req.Title,
		Status:      req.Status,
	}

	if err := h.content.Create(r.Context(), item); err != nil {
		logger.Log.Error("failed to create item", "content_type", contentType, "error", err)
		http.Error(w, "failed to create item", http.StatusInternalServerError)
		return
	}

	for key, value := range req.Attributes {
		if err := h.attributes.Set(r.Context(), item.ID, key, value); err != nil {
			logger.Log.Error("failed to set attribute", "item", item.ID, "key", key, "error", err)
			http.Error(w, "failed to set attributes", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusCreated, item)
}

type PutAttributeRequest struct {
	Value string `json:"value"`
}

func (h *ItemHandler) PutAttribute(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.resolveItem(w, r)
	if !ok {
		return
	}

	var req PutAttributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := mux.Vars(r)["key"]
	if err := h.attributes.Set(r.Context(), itemID, key, req.Value); err != nil {
		logger.Log.Error("failed to set attribute", "item", itemID, "key", key, "error", err)
		http.Error(w, "failed to set attribute", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "attribute set"})
}

func (h *ItemHandler) DeleteAttribute(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.resolveItem(w, r)
	if !ok {
		return
	}

	key := mux.Vars(r)["key"]
	if err := h.attributes.Delete(r.Context(), itemID, key); err != nil {
		logger.Log.Error("failed to delete attribute", "item", itemID, "key", key, "error", err)
		http.Error(w, "failed to delete attribute", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "attribute deleted"})
}

func (h *ItemHandler) resolveItem(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	itemID, err := uuid.Parse(mux.Vars(r)["itemID"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	if _, err := h.content.GetByID(r.Context(), itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "item not found", http.StatusNotFound)
		} else {
			logger.Log.Error("failed to load item", "item", itemID, "error", err)
			http.Error(w, "failed to load item", http.StatusInternalServerError)
		}
		return uuid.Nil, false
	}

	return itemID, true
}
