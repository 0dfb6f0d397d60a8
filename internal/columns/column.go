package columns

// Type classifies how a column's cell value is sourced.
type Type string

const (
	TypeAttribute Type = "attribute"
	TypeComputed  Type = "computed"
	TypeField     Type = "external-field"
	TypeImage     Type = "image"
	TypeThumbnail Type = "thumbnail"
)

// Order directives understood by the content store when a column sorts on an
// item attribute rather than a first-class field.
const (
	OrderByValue   = "attribute_value"
	OrderByNumeric = "attribute_value_num"
)

// ThumbnailKey is the reserved column key for the featured-image column.
const ThumbnailKey = "thumbnail"

// RemovedSentinel disables a column when used as the raw declaration value.
const RemovedSentinel = "removed"

// DefaultImageSize is used when an image or thumbnail column declares no size.
const DefaultImageSize = "thumbnail"

// Transform rewrites a resolved cell value before it is output. itemID is the
// id of the row being rendered.
type Transform func(value any, itemID string) any

// Spec is a fully normalized column declaration. Every field is populated
// after Registry construction.
type Spec struct {
	Key        string
	Title      string
	Type       Type
	Sortable   bool
	OrderBy    string
	Searchable bool
	Width      int
	Height     int
	ImageSize  string
	Transform  Transform
}

// declaration is the two-case representation of a declared column: either an
// active spec or an explicit removal.
type declaration struct {
	removed bool
	spec    Spec
}

// RawDeclaration is one entry of the caller-supplied column configuration.
// Value is either RemovedSentinel or a map of spec fields. Declarations are a
// slice rather than a map so the caller's ordering survives into the registry.
type RawDeclaration struct {
	Key   string
	Value any
}
