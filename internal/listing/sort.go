package listing

import "github.com/meridiancms/meridian/internal/columns"

// SortRewriter rewrites a listing query's requested sort key into a
// store-compatible sort clause when the key maps to an attribute-typed
// column.
type SortRewriter struct {
	registry *columns.Registry
}

func NewSortRewriter(registry *columns.Registry) *SortRewriter {
	return &SortRewriter{registry: registry}
}

// Rewrite replaces the generic sort key with the column's order directive and
// points the attribute selector at the column key. Anything else — secondary
// query, foreign content type, unregistered or non-attribute column — passes
// through untouched.
func (r *SortRewriter) Rewrite(q *Query) {
	if !q.Primary || q.ContentType != r.registry.ContentType() || q.OrderBy == "" {
		return
	}

	spec, ok := r.registry.Spec(q.OrderBy)
	if !ok || spec.Type != columns.TypeAttribute {
		return
	}

	q.AttributeKey = spec.Key
	q.OrderBy = spec.OrderBy
}
