package listing

import "github.com/meridiancms/meridian/internal/columns"

// SearchRewriter intercepts a free-text search on the primary list view and
// rewrites it into an attribute-filter disjunction over the searchable
// attribute columns, bypassing the store's native full-text path.
type SearchRewriter struct {
	registry *columns.Registry
}

func NewSearchRewriter(registry *columns.Registry) *SearchRewriter {
	return &SearchRewriter{registry: registry}
}

// Rewrite installs one LIKE filter per searchable attribute column and clears
// the free-text term. The original term stays visible to the UI through
// SearchLabel, and a hook splices a title match into the store's generated
// attribute WHERE fragment so title hits are not lost.
//
// With no searchable attribute columns the query is left untouched: falling
// through to the store's default search is mandatory, otherwise the term
// would be silently swallowed.
func (r *SearchRewriter) Rewrite(q *Query) {
	if !q.Primary || q.ContentType != r.registry.ContentType() || q.SearchTerm == "" {
		return
	}

	var filters []AttributeFilter
	for _, key := range r.registry.Keys() {
		spec, ok := r.registry.Spec(key)
		if !ok || spec.Type != columns.TypeAttribute || !spec.Searchable {
			continue
		}
		filters = append(filters, AttributeFilter{
			Key:     key,
			Value:   q.SearchTerm,
			Compare: CompareLike,
		})
	}
	if len(filters) == 0 {
		return
	}

	term := q.SearchTerm
	q.AttributeFilters = filters
	q.SearchTerm = ""
	q.SearchLabel = term

	// The guard is a closure on this Query, so it is request-scoped by
	// construction: the hook may fire any number of times while the store
	// assembles SQL, but only the first call splices the title branch.
	spliced := false
	q.OnAttributeSQL(func(frag string, args []any) (string, []any) {
		if spliced || frag == "" {
			return frag, args
		}
		spliced = true
		frag = "(title ILIKE ? OR " + frag + ")"
		args = append([]any{"%" + EscapeLike(term) + "%"}, args...)
		return frag, args
	})
}

// EscapeLike neutralizes LIKE wildcards in a user-supplied term so it matches
// literally.
func EscapeLike(term string) string {
	out := make([]byte, 0, len(term))
	for i := 0; i < len(term); i++ {
		switch term[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, term[i])
	}
	return string(out)
}
