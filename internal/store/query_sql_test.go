package store

import (
	"strings"
	"testing"

	"github.com/meridiancms/meridian/internal/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAttributeFilterSQL(t *testing.T) {
	frag, args := BuildAttributeFilterSQL([]listing.AttributeFilter{
		{Key: "sku", Value: "AB12", Compare: listing.CompareLike},
		{Key: "vendor", Value: "acme", Compare: listing.CompareLike},
	})

	assert.Equal(t, 2, strings.Count(frag, "EXISTS"))
	assert.Equal(t, 1, strings.Count(frag, " OR "), "filters combine as a disjunction")
	assert.Equal(t, []any{"sku", "%AB12%", "vendor", "%acme%"}, args)
}

func TestBuildAttributeFilterSQLEscapesWildcards(t *testing.T) {
	_, args := BuildAttributeFilterSQL([]listing.AttributeFilter{
		{Key: "sku", Value: "50%_off", Compare: listing.CompareLike},
	})
	require.Len(t, args, 2)
	assert.Equal(t, `%50\%\_off%`, args[1])
}

func TestBuildAttributeFilterSQLEquality(t *testing.T) {
	frag, args := BuildAttributeFilterSQL([]listing.AttributeFilter{
		{Key: "status", Value: "active", Compare: "="},
	})
	assert.Contains(t, frag, "fa.value = ?")
	assert.Equal(t, []any{"status", "active"}, args)
}

func TestBuildAttributeFilterSQLEmpty(t *testing.T) {
	frag, args := BuildAttributeFilterSQL(nil)
	assert.Empty(t, frag)
	assert.Nil(t, args)
}

func TestBuildAttributeFilterSQLWithTitleSplice(t *testing.T) {
	// End to end through the query hooks: the fragment the store would
	// install after the search rewriter has run.
	q := listing.NewQuery("product")
	q.AttributeFilters = []listing.AttributeFilter{
		{Key: "sku", Value: "AB12", Compare: listing.CompareLike},
	}
	q.OnAttributeSQL(func(frag string, args []any) (string, []any) {
		return "(title ILIKE ? OR " + frag + ")", append([]any{"%AB12%"}, args...)
	})

	frag, args := BuildAttributeFilterSQL(q.AttributeFilters)
	frag, args = q.ApplyAttributeSQLHooks(frag, args)

	assert.True(t, strings.HasPrefix(frag, "(title ILIKE ? OR "))
	assert.True(t, strings.HasSuffix(frag, ")"))
	assert.Equal(t, "%AB12%", args[0])
	assert.Len(t, args, 3)
}

func TestSizeVariantPath(t *testing.T) {
	testCases := []struct {
		description string
		path        string
		size        string
		want        string
	}{
		{description: "thumbnail variant", path: "uploads/photo.jpg", size: "thumbnail", want: "uploads/photo-thumbnail.jpg"},
		{description: "full keeps original", path: "uploads/photo.jpg", size: "full", want: "uploads/photo.jpg"},
		{description: "empty keeps original", path: "uploads/photo.jpg", size: "", want: "uploads/photo.jpg"},
		{description: "no extension", path: "uploads/photo", size: "large", want: "uploads/photo-large"},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.want, sizeVariantPath(testCase.path, testCase.size), testCase.description)
	}
}
