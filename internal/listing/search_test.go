package listing

import (
	"strings"
	"testing"

	"github.com/meridiancms/meridian/internal/columns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRewrite(t *testing.T) {
	registry, err := columns.Build("product", []columns.RawDeclaration{
		{Key: "sku", Value: map[string]any{"searchable": true}},
		{Key: "vendor", Value: map[string]any{"searchable": true}},
		{Key: "price", Value: map[string]any{"sortable": true}},
		{Key: "preview", Value: map[string]any{"type": string(columns.TypeImage), "searchable": true}},
	})
	require.NoError(t, err)

	q := NewQuery("product")
	q.Primary = true
	q.SearchTerm = "AB12"

	NewSearchRewriter(registry).Rewrite(q)

	assert.Equal(t, []AttributeFilter{
		{Key: "sku", Value: "AB12", Compare: CompareLike},
		{Key: "vendor", Value: "AB12", Compare: CompareLike},
	}, q.AttributeFilters, "only searchable attribute columns contribute filters")

	assert.Empty(t, q.SearchTerm, "native full-text path is bypassed")
	assert.Equal(t, "AB12", q.SearchLabel)
	assert.Equal(t, "AB12", q.DisplayedSearch(), "the UI still sees the original term")
}

func TestSearchRewriteNoSearchableColumns(t *testing.T) {
	registry, err := columns.Build("product", []columns.RawDeclaration{
		{Key: "price", Value: map[string]any{"sortable": true}},
	})
	require.NoError(t, err)

	q := NewQuery("product")
	q.Primary = true
	q.SearchTerm = "AB12"

	NewSearchRewriter(registry).Rewrite(q)

	assert.Equal(t, "AB12", q.SearchTerm, "with no searchable columns the term must survive")
	assert.Empty(t, q.AttributeFilters)
	assert.Empty(t, q.SearchLabel)
}

func TestSearchRewriteNoOps(t *testing.T) {
	registry, err := columns.Build("product", []columns.RawDeclaration{
		{Key: "sku", Value: map[string]any{"searchable": true}},
	})
	require.NoError(t, err)
	rewriter := NewSearchRewriter(registry)

	secondary := NewQuery("product")
	secondary.SearchTerm = "AB12"
	rewriter.Rewrite(secondary)
	assert.Equal(t, "AB12", secondary.SearchTerm, "secondary queries pass through")

	foreign := NewQuery("event")
	foreign.Primary = true
	foreign.SearchTerm = "AB12"
	rewriter.Rewrite(foreign)
	assert.Equal(t, "AB12", foreign.SearchTerm, "foreign content types pass through")

	empty := NewQuery("product")
	empty.Primary = true
	rewriter.Rewrite(empty)
	assert.Empty(t, empty.AttributeFilters, "no term, no filters")
}

func TestSearchRewriteTitleSpliceIsIdempotent(t *testing.T) {
	registry, err := columns.Build("product", []columns.RawDeclaration{
		{Key: "sku", Value: map[string]any{"searchable": true}},
	})
	require.NoError(t, err)

	q := NewQuery("product")
	q.Primary = true
	q.SearchTerm = "AB12"
	NewSearchRewriter(registry).Rewrite(q)

	frag := "EXISTS (...)"
	args := []any{"sku", "%AB12%"}

	// The store's fragment hook may fire more than once per request; only the
	// first invocation splices.
	first, firstArgs := q.ApplyAttributeSQLHooks(frag, args)
	assert.Equal(t, "(title ILIKE ? OR EXISTS (...))", first)
	require.Len(t, firstArgs, 3)
	assert.Equal(t, "%AB12%", firstArgs[0])

	second, secondArgs := q.ApplyAttributeSQLHooks(first, firstArgs)
	third, thirdArgs := q.ApplyAttributeSQLHooks(second, secondArgs)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assert.Len(t, thirdArgs, 3, "no extra args on repeated invocations")
	assert.Equal(t, 1, strings.Count(third, "title ILIKE ?"), "exactly one spliced title branch")
}

func TestSearchRewriteEscapesLikeWildcards(t *testing.T) {
	registry, err := columns.Build("product", []columns.RawDeclaration{
		{Key: "sku", Value: map[string]any{"searchable": true}},
	})
	require.NoError(t, err)

	q := NewQuery("product")
	q.Primary = true
	q.SearchTerm = "100%_off"
	NewSearchRewriter(registry).Rewrite(q)

	_, args := q.ApplyAttributeSQLHooks("frag", nil)
	require.Len(t, args, 1)
	assert.Equal(t, `%100\%\_off%`, args[0])
}

func TestEscapeLike(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "50%", want: `50\%`},
		{in: "a_b", want: `a\_b`},
		{in: `back\slash`, want: `back\\slash`},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.want, EscapeLike(testCase.in))
	}
}
