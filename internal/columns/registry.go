package columns

import (
	"fmt"
)

// ConfigurationError reports a malformed column declaration. Registry
// construction fails on the first one encountered; no partial registry is
// ever returned.
type ConfigurationError struct {
	ContentType string
	Key         string
	Reason      string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("column configuration for %q: column %q: %s", e.ContentType, e.Key, e.Reason)
}

// Registry owns the normalized column declarations for one content type.
// Built once at startup, immutable afterwards, safe for concurrent readers.
type Registry struct {
	contentType string
	order       []string
	decls       map[string]declaration
}

// Build normalizes raw declarations into a Registry.
func Build(contentType string, decls []RawDeclaration) (*Registry, error) {
	r := &Registry{
		contentType: contentType,
		decls:       make(map[string]declaration, len(decls)),
	}

	for _, raw := range decls {
		if s, ok := raw.Value.(string); ok && s == RemovedSentinel {
			r.add(raw.Key, declaration{removed: true})
			continue
		}

		cfg, ok := raw.Value.(map[string]any)
		if !ok {
			return nil, &ConfigurationError{
				ContentType: contentType,
				Key:         raw.Key,
				Reason:      fmt.Sprintf("expected a mapping or %q, got %T", RemovedSentinel, raw.Value),
			}
		}

		spec, err := normalize(contentType, raw.Key, cfg)
		if err != nil {
			return nil, err
		}
		r.add(raw.Key, declaration{spec: spec})
	}

	return r, nil
}

func (r *Registry) add(key string, d declaration) {
	if _, ok := r.decls[key]; !ok {
		r.order = append(r.order, key)
	}
	r.decls[key] = d
}

// ContentType returns the content type this registry was built for.
func (r *Registry) ContentType() string {
	return r.contentType
}

// Keys returns the declared column keys in declaration order, including
// removed ones.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Spec returns the normalized spec for key. ok is false for unknown and for
// removed columns.
func (r *Registry) Spec(key string) (Spec, bool) {
	d, ok := r.decls[key]
	if !ok || d.removed {
		return Spec{}, false
	}
	return d.spec, true
}

// Removed reports whether key was explicitly disabled.
func (r *Registry) Removed(key string) bool {
	d, ok := r.decls[key]
	return ok && d.removed
}

var generalDefaults = map[string]any{
	"title":      "",
	"type":       string(TypeAttribute),
	"transform":  nil,
	"sortable":   false,
	"orderby":    OrderByValue,
	"searchable": false,
}

var thumbnailDefaults = map[string]any{
	"title":    "Featured Image",
	"type":     string(TypeThumbnail),
	"width":    80,
	"height":   80,
	"sortable": false,
}

// normalize merges defaults into a raw config and extracts typed fields.
// Caller-supplied values always win; defaults never overwrite a present key.
func normalize(contentType, key string, cfg map[string]any) (Spec, error) {
	merged := make(map[string]any, len(cfg)+len(generalDefaults))
	for k, v := range cfg {
		merged[k] = v
	}
	if key == ThumbnailKey {
		applyDefaults(merged, thumbnailDefaults)
	}
	applyDefaults(merged, generalDefaults)

	fields := &fieldReader{contentType: contentType, key: key, cfg: merged}
	spec := Spec{
		Key:        key,
		Title:      fields.str("title"),
		Type:       Type(fields.str("type")),
		Sortable:   fields.boolean("sortable"),
		OrderBy:    fields.str("orderby"),
		Searchable: fields.boolean("searchable"),
		Width:      fields.integer("width"),
		Height:     fields.integer("height"),
		ImageSize:  fields.str("image_size"),
		Transform:  fields.transform("transform"),
	}
	if fields.err != nil {
		return Spec{}, fields.err
	}
	return spec, nil
}

func applyDefaults(dst, defaults map[string]any) {
	for k, v := range defaults {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
}

// fieldReader extracts typed fields from a merged config, recording the first
// type mismatch as a ConfigurationError.
type fieldReader struct {
	contentType string
	key         string
	cfg         map[string]any
	err         error
}

func (f *fieldReader) fail(field string, want string, got any) {
	if f.err == nil {
		f.err = &ConfigurationError{
			ContentType: f.contentType,
			Key:         f.key,
			Reason:      fmt.Sprintf("field %q: expected %s, got %T", field, want, got),
		}
	}
}

func (f *fieldReader) str(field string) string {
	v, ok := f.cfg[field]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		f.fail(field, "string", v)
		return ""
	}
	return s
}

func (f *fieldReader) boolean(field string) bool {
	v, ok := f.cfg[field]
	if !ok || v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		f.fail(field, "bool", v)
		return false
	}
	return b
}

func (f *fieldReader) integer(field string) int {
	v, ok := f.cfg[field]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		// JSON numbers decode as float64.
		return int(n)
	default:
		f.fail(field, "integer", v)
		return 0
	}
}

func (f *fieldReader) transform(field string) Transform {
	v, ok := f.cfg[field]
	if !ok || v == nil {
		return nil
	}
	switch fn := v.(type) {
	case Transform:
		return fn
	case func(any, string) any:
		return fn
	default:
		f.fail(field, "transform func", v)
		return nil
	}
}
