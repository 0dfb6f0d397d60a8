package store

import (
	"strings"

	"github.com/meridiancms/meridian/internal/listing"
)

// BuildAttributeFilterSQL compiles an attribute-filter disjunction into one
// WHERE fragment with ? placeholders. Each clause probes the attribute table
// for the item at hand, so filters on different keys do not collide. LIKE
// filters match case-insensitive substrings; any other compare falls back to
// equality.
func BuildAttributeFilterSQL(filters []listing.AttributeFilter) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(filters))
	args := make([]any, 0, 2*len(filters))
	for _, f := range filters {
		switch f.Compare {
		case listing.CompareLike:
			parts = append(parts, "EXISTS (SELECT 1 FROM item_attributes AS fa WHERE fa.item_id = ci.id AND fa.key = ? AND fa.value ILIKE ?)")
			args = append(args, f.Key, "%"+listing.EscapeLike(f.Value)+"%")
		default:
			parts = append(parts, "EXISTS (SELECT 1 FROM item_attributes AS fa WHERE fa.item_id = ci.id AND fa.key = ? AND fa.value = ?)")
			args = append(args, f.Key, f.Value)
		}
	}
	return strings.Join(parts, " OR "), args
}
