package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAppliesDefaults(t *testing.T) {
	registry, err := Build("product", []RawDeclaration{
		{Key: "sku", Value: map[string]any{}},
	})
	require.NoError(t, err)

	spec, ok := registry.Spec("sku")
	require.True(t, ok)
	assert.Equal(t, "sku", spec.Key)
	assert.Equal(t, "", spec.Title)
	assert.Equal(t, TypeAttribute, spec.Type)
	assert.False(t, spec.Sortable)
	assert.Equal(t, OrderByValue, spec.OrderBy)
	assert.False(t, spec.Searchable)
	assert.Nil(t, spec.Transform)
}

func TestBuildCallerValuesWin(t *testing.T) {
	registry, err := Build("product", []RawDeclaration{
		{Key: "price", Value: map[string]any{
			"title":      "Price",
			"sortable":   true,
			"orderby":    OrderByNumeric,
			"searchable": true,
		}},
	})
	require.NoError(t, err)

	spec, ok := registry.Spec("price")
	require.True(t, ok)
	assert.Equal(t, "Price", spec.Title)
	assert.True(t, spec.Sortable)
	assert.Equal(t, OrderByNumeric, spec.OrderBy)
	assert.True(t, spec.Searchable)
}

func TestBuildThumbnailDefaults(t *testing.T) {
	testCases := []struct {
		description string
		value       map[string]any
		wantTitle   string
		wantWidth   int
		wantHeight  int
	}{
		{
			description: "bare thumbnail gets the featured image defaults",
			value:       map[string]any{},
			wantTitle:   "Featured Image",
			wantWidth:   80,
			wantHeight:  80,
		},
		{
			description: "declared values override thumbnail defaults",
			value:       map[string]any{"title": "Cover", "width": 120},
			wantTitle:   "Cover",
			wantWidth:   120,
			wantHeight:  80,
		},
	}

	for _, testCase := range testCases {
		registry, err := Build("page", []RawDeclaration{
			{Key: ThumbnailKey, Value: testCase.value},
		})
		require.NoError(t, err, testCase.description)

		spec, ok := registry.Spec(ThumbnailKey)
		require.True(t, ok, testCase.description)
		assert.Equal(t, testCase.wantTitle, spec.Title, testCase.description)
		assert.Equal(t, TypeThumbnail, spec.Type, testCase.description)
		assert.Equal(t, testCase.wantWidth, spec.Width, testCase.description)
		assert.Equal(t, testCase.wantHeight, spec.Height, testCase.description)
		assert.False(t, spec.Sortable, testCase.description)
	}
}

func TestBuildRemovedSentinel(t *testing.T) {
	registry, err := Build("product", []RawDeclaration{
		{Key: "comments", Value: RemovedSentinel},
	})
	require.NoError(t, err)

	assert.True(t, registry.Removed("comments"))
	_, ok := registry.Spec("comments")
	assert.False(t, ok, "removed columns expose no spec")
}

func TestBuildMalformedDeclarations(t *testing.T) {
	testCases := []struct {
		description string
		value       any
	}{
		{description: "arbitrary string is not the sentinel", value: "yes"},
		{description: "number instead of mapping", value: 12},
		{description: "nil value", value: nil},
		{description: "wrongly typed field", value: map[string]any{"sortable": "yes"}},
		{description: "wrongly typed transform", value: map[string]any{"transform": 3}},
	}

	for _, testCase := range testCases {
		_, err := Build("product", []RawDeclaration{
			{Key: "broken", Value: testCase.value},
		})
		require.Error(t, err, testCase.description)

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr, testCase.description)
		assert.Equal(t, "broken", cfgErr.Key, testCase.description)
		assert.Equal(t, "product", cfgErr.ContentType, testCase.description)
	}
}

func TestBuildFailsFast(t *testing.T) {
	registry, err := Build("product", []RawDeclaration{
		{Key: "ok", Value: map[string]any{"title": "Fine"}},
		{Key: "broken", Value: 42},
	})
	assert.Error(t, err)
	assert.Nil(t, registry, "no partial registry on failure")
}

func TestBuildJSONNumbers(t *testing.T) {
	// Width and height arrive as float64 when the declaration comes from a
	// JSON config file.
	registry, err := Build("page", []RawDeclaration{
		{Key: "banner", Value: map[string]any{
			"type":   string(TypeImage),
			"width":  float64(300),
			"height": float64(150),
		}},
	})
	require.NoError(t, err)

	spec, ok := registry.Spec("banner")
	require.True(t, ok)
	assert.Equal(t, 300, spec.Width)
	assert.Equal(t, 150, spec.Height)
}

func TestBuildTransform(t *testing.T) {
	called := false
	registry, err := Build("product", []RawDeclaration{
		{Key: "price", Value: map[string]any{
			"transform": Transform(func(value any, itemID string) any {
				called = true
				return value
			}),
		}},
	})
	require.NoError(t, err)

	spec, ok := registry.Spec("price")
	require.True(t, ok)
	require.NotNil(t, spec.Transform)
	spec.Transform("1", "item")
	assert.True(t, called)
}

func TestRegistryKeysKeepDeclarationOrder(t *testing.T) {
	registry, err := Build("product", []RawDeclaration{
		{Key: "sku", Value: map[string]any{}},
		{Key: "comments", Value: RemovedSentinel},
		{Key: "price", Value: map[string]any{}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"sku", "comments", "price"}, registry.Keys())
	assert.Equal(t, "product", registry.ContentType())
}
