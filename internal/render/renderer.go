package render

import (
	"context"
	"fmt"
	"html"
	"strconv"

	"github.com/meridiancms/meridian/internal/columns"
	"github.com/meridiancms/meridian/internal/logger"
)

// AttributeStore reads a single loosely-typed attribute value for an item.
type AttributeStore interface {
	Get(ctx context.Context, itemID, key string) (string, error)
}

// FieldProvider resolves values that live outside the attribute store, such
// as fields owned by a separate field framework.
type FieldProvider interface {
	Get(ctx context.Context, itemID, key string) (any, error)
}

// ImageResolver turns items and attachment ids into servable image URLs.
type ImageResolver interface {
	ThumbnailURL(ctx context.Context, itemID, size string) (string, error)
	AttachmentURL(ctx context.Context, attachmentID int64, size string) (string, error)
}

// Renderer produces the cell output for one column of one item. Values are
// pulled lazily per call; nothing is cached between rows.
type Renderer struct {
	registry *columns.Registry
	attrs    AttributeStore
	fields   FieldProvider
	images   ImageResolver
}

func NewRenderer(registry *columns.Registry, attrs AttributeStore, fields FieldProvider, images ImageResolver) *Renderer {
	return &Renderer{
		registry: registry,
		attrs:    attrs,
		fields:   fields,
		images:   images,
	}
}

// Render resolves and formats the cell for columnKey on the item itemID. An
// unregistered key, an absent value, or a collaborator failure all produce
// the empty string so the host can defer to its own renderers; nothing here
// is fatal to the caller.
func (r *Renderer) Render(ctx context.Context, columnKey, itemID string) string {
	spec, ok := r.registry.Spec(columnKey)
	if !ok {
		return ""
	}

	if spec.Type == columns.TypeThumbnail {
		return r.renderThumbnail(ctx, spec, itemID)
	}

	value := r.resolve(ctx, spec, itemID)

	if spec.Transform != nil {
		value = spec.Transform(value, itemID)
	}

	return stringify(value)
}

func (r *Renderer) resolve(ctx context.Context, spec columns.Spec, itemID string) any {
	switch spec.Type {
	case columns.TypeField:
		v, err := r.fields.Get(ctx, itemID, spec.Key)
		if err != nil {
			logger.Log.Debug("field lookup failed", "item", itemID, "key", spec.Key, "error", err)
			return nil
		}
		return v

	case columns.TypeImage:
		return r.resolveImage(ctx, spec, itemID)

	case columns.TypeComputed:
		// Computed columns have no stored value; the transform supplies
		// the output.
		return nil

	default:
		return r.attribute(ctx, itemID, spec.Key)
	}
}

// resolveImage treats the stored attribute as an attachment id. When the
// value is not numeric or the attachment cannot be resolved it falls back to
// the raw value as a plain attribute.
func (r *Renderer) resolveImage(ctx context.Context, spec columns.Spec, itemID string) any {
	raw := r.attribute(ctx, itemID, spec.Key)
	if raw == "" {
		return ""
	}

	attachmentID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw
	}

	url, err := r.images.AttachmentURL(ctx, attachmentID, imageSize(spec))
	if err != nil || url == "" {
		if err != nil {
			logger.Log.Debug("attachment resolution failed", "item", itemID, "attachment", attachmentID, "error", err)
		}
		return raw
	}

	style := "max-width:100%"
	if spec.Width > 0 {
		style += ";width:" + strconv.Itoa(spec.Width) + "px"
	}
	if spec.Height > 0 {
		style += ";height:" + strconv.Itoa(spec.Height) + "px"
	}
	return HTML(imgTag(url, style))
}

func (r *Renderer) renderThumbnail(ctx context.Context, spec columns.Spec, itemID string) string {
	url, err := r.images.ThumbnailURL(ctx, itemID, imageSize(spec))
	if err != nil {
		logger.Log.Debug("thumbnail lookup failed", "item", itemID, "error", err)
		return ""
	}
	if url == "" {
		return ""
	}

	var style string
	if spec.Width > 0 {
		style = "width:" + strconv.Itoa(spec.Width) + "px"
	}
	if spec.Height > 0 {
		if style != "" {
			style += ";"
		}
		style += "height:" + strconv.Itoa(spec.Height) + "px"
	}
	return imgTag(url, style)
}

func (r *Renderer) attribute(ctx context.Context, itemID, key string) string {
	v, err := r.attrs.Get(ctx, itemID, key)
	if err != nil {
		logger.Log.Debug("attribute lookup failed", "item", itemID, "key", key, "error", err)
		return ""
	}
	return v
}

func imageSize(spec columns.Spec) string {
	if spec.ImageSize != "" {
		return spec.ImageSize
	}
	return columns.DefaultImageSize
}

// imgTag builds an image reference with every interpolated value escaped.
func imgTag(src, style string) string {
	if style == "" {
		return `<img src="` + html.EscapeString(src) + `">`
	}
	return `<img src="` + html.EscapeString(src) + `" style="` + html.EscapeString(style) + `">`
}

// stringify turns the final cell value into output. Raw string values are
// data and get escaped; markup built by this package was escaped piecewise at
// construction, and transform output is host code and trusted as-is.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case HTML:
		return string(v)
	case string:
		return html.EscapeString(v)
	default:
		return html.EscapeString(fmt.Sprintf("%v", v))
	}
}

// HTML marks a value as already-safe markup, exempting it from escaping.
type HTML string
