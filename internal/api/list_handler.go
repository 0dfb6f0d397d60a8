package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/meridiancms/meridian/internal/columns"
	"github.com/meridiancms/meridian/internal/listing"
	"github.com/meridiancms/meridian/internal/logger"
	"github.com/meridiancms/meridian/internal/store"
)

type ListHandler struct {
	views   map[string]*View
	content store.ContentLister
}

func NewListHandler(views map[string]*View, content store.ContentLister) *ListHandler {
	return &ListHandler{
		views:   views,
		content: content,
	}
}

type ListRow struct {
	ID    uuid.UUID         `json:"id"`
	Title string            `json:"title"`
	Cells map[string]string `json:"cells"`
}

type ListResponse struct {
	Columns     *columns.OrderedMap[string] `json:"columns"`
	Sortable    *columns.OrderedMap[string] `json:"sortable"`
	SearchLabel string                      `json:"search_label,omitempty"`
	Total       int                         `json:"total"`
	Page        int                         `json:"page"`
	PerPage     int                         `json:"per_page"`
	Rows        []ListRow                   `json:"rows"`
}

// ListItems serves the primary list view for one content type: build the
// query, let the rewriters have it, execute, then render every visible
// column per row.
func (h *ListHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contentType := vars["type"]

	view, ok := h.views[contentType]
	if !ok {
		http.Error(w, "unknown content type", http.StatusNotFound)
		return
	}

	q, err := queryFromRequest(contentType, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view.Sort.Rewrite(q)
	view.Search.Rewrite(q)

	items, total, err := h.content.List(r.Context(), q)
	if err != nil {
		logger.Log.Error("listing query failed", "content_type", contentType, "error", err)
		http.Error(w, "failed to list items", http.StatusInternalServerError)
		return
	}

	visible := view.Registry.VisibleColumns(baseVisibleColumns())

	rows := make([]ListRow, 0, len(items))
	for _, item := range items {
		cells := make(map[string]string, visible.Len())
		for _, key := range visible.Keys() {
			switch key {
			case "title":
				cells[key] = item.Title
			case "date":
				cells[key] = item.CreatedAt.Format("2006-01-02 15:04")
			default:
				cells[key] = view.Renderer.Render(r.Context(), key, item.ID.String())
			}
		}
		rows = append(rows, ListRow{ID: item.ID, Title: item.Title, Cells: cells})
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Columns:     visible,
		Sortable:    view.Registry.SortableColumns(baseSortableColumns()),
		SearchLabel: q.DisplayedSearch(),
		Total:       total,
		Page:        q.Page,
		PerPage:     q.PerPage,
		Rows:        rows,
	})
}

type ColumnsResponse struct {
	Columns  *columns.OrderedMap[string] `json:"columns"`
	Sortable *columns.OrderedMap[string] `json:"sortable"`
}

// GetColumns exposes the projected column sets without running a query.
func (h *ListHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	contentType := vars["type"]

	view, ok := h.views[contentType]
	if !ok {
		http.Error(w, "unknown content type", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, ColumnsResponse{
		Columns:  view.Registry.VisibleColumns(baseVisibleColumns()),
		Sortable: view.Registry.SortableColumns(baseSortableColumns()),
	})
}

func queryFromRequest(contentType string, r *http.Request) (*listing.Query, error) {
	q := listing.NewQuery(contentType)
	q.Primary = true

	params := r.URL.Query()
	q.OrderBy = params.Get("orderby")
	if order := params.Get("order"); order != "" {
		q.Order = listing.Direction(strings.ToLower(order))
	}
	q.SearchTerm = params.Get("s")

	if pageStr := params.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return nil, errBadParam("page", pageStr)
		}
		q.Page = page
	}
	if perPageStr := params.Get("per_page"); perPageStr != "" {
		perPage, err := strconv.Atoi(perPageStr)
		if err != nil || perPage < 1 {
			return nil, errBadParam("per_page", perPageStr)
		}
		q.PerPage = perPage
	}

	return q, nil
}

type badParamError struct {
	name  string
	value string
}

func errBadParam(name, value string) error {
	return &badParamError{name: name, value: value}
}

func (e *badParamError) Error() string {
	return "invalid " + e.name + " parameter: " + e.value
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
