package listing

import "strings"

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Compare is the match operator of an attribute filter. Like is the only
// operator the listing shape needs: case-insensitive substring match.
type Compare string

const CompareLike Compare = "LIKE"

// AttributeFilter matches items whose attribute under Key satisfies Compare
// against Value. Filters on a query combine as a disjunction.
type AttributeFilter struct {
	Key     string  `json:"key"`
	Value   string  `json:"value"`
	Compare Compare `json:"compare"`
}

// AttributeSQLHook rewrites the WHERE fragment the store generates for a
// query's attribute filters. frag uses ? placeholders bound to args.
type AttributeSQLHook func(frag string, args []any) (string, []any)

// Query describes one content-type listing request: at most one sort key and
// one free-text search term, plus attribute filters. It is built per request,
// mutated in place by the rewriters, then handed to the store. Never share a
// Query across requests; the hooks registered on it carry request state.
type Query struct {
	ContentType string
	// Primary marks the canonical admin list view query, as opposed to
	// secondary or nested queries. Rewriters only touch primary queries.
	Primary bool

	// OrderBy carries the requested column key on the way in; after sort
	// rewriting it holds the store directive (attribute_value,
	// attribute_value_num, or a native field).
	OrderBy string
	// AttributeKey selects which attribute the attribute_value* directives
	// compare on.
	AttributeKey string
	Order        Direction

	SearchTerm string
	// SearchLabel re-presents a search term to the UI after the rewriter
	// cleared SearchTerm in favor of attribute filters.
	SearchLabel string

	AttributeFilters []AttributeFilter

	Page    int
	PerPage int

	hooks []AttributeSQLHook
}

func NewQuery(contentType string) *Query {
	return &Query{
		ContentType: contentType,
		Order:       Desc,
		Page:        1,
		PerPage:     20,
	}
}

// NormalizedOrder maps Order onto a SQL direction keyword, defaulting to DESC.
func (q *Query) NormalizedOrder() string {
	if strings.EqualFold(string(q.Order), string(Asc)) {
		return "ASC"
	}
	return "DESC"
}

// DisplayedSearch is what the UI should show as the active search term.
func (q *Query) DisplayedSearch() string {
	if q.SearchLabel != "" {
		return q.SearchLabel
	}
	return q.SearchTerm
}

// OnAttributeSQL registers a hook invoked when the store generates the
// attribute-filter WHERE fragment.
func (q *Query) OnAttributeSQL(hook AttributeSQLHook) {
	q.hooks = append(q.hooks, hook)
}

// ApplyAttributeSQLHooks runs the registered hooks in registration order. The
// store calls this once per generated fragment; hooks that must only act once
// per request guard themselves.
func (q *Query) ApplyAttributeSQLHooks(frag string, args []any) (string, []any) {
	for _, hook := range q.hooks {
		frag, args = hook(frag, args)
	}
	return frag, args
}
