package api

import (
	"github.com/meridiancms/meridian/internal/columns"
	"github.com/meridiancms/meridian/internal/listing"
	"github.com/meridiancms/meridian/internal/render"
)

// View bundles everything one content type's list view needs: the column
// registry, the query rewriters bound to it, and the cell renderer. One View
// is built per content type at startup and shared across requests; all of its
// parts are read-only.
type View struct {
	Registry *columns.Registry
	Sort     *listing.SortRewriter
	Search   *listing.SearchRewriter
	Renderer *render.Renderer
}

func NewView(registry *columns.Registry, attrs render.AttributeStore, fields render.FieldProvider, images render.ImageResolver) *View {
	return &View{
		Registry: registry,
		Sort:     listing.NewSortRewriter(registry),
		Search:   listing.NewSearchRewriter(registry),
		Renderer: render.NewRenderer(registry, attrs, fields, images),
	}
}

// Platform default columns every list view starts from. Registries project
// onto these; a registry can remove or reorder around them but does not own
// them.
func baseVisibleColumns() *columns.OrderedMap[string] {
	base := columns.NewOrderedMap[string]()
	base.Set("title", "Title")
	base.Set("date", "Date")
	return base
}

func baseSortableColumns() *columns.OrderedMap[string] {
	base := columns.NewOrderedMap[string]()
	base.Set("title", "title")
	base.Set("date", "date")
	return base
}
