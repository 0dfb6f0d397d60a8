package store

import (
	"context"
	"fmt"
)

// FieldFunc computes one external field value for an item.
type FieldFunc func(ctx context.Context, itemID string) (any, error)

// FieldProvider backs external-field columns with host-registered field
// functions, standing in for a separate field framework. It satisfies
// render.FieldProvider.
type FieldProvider struct {
	fields map[string]FieldFunc
}

func NewFieldProvider() *FieldProvider {
	return &FieldProvider{fields: make(map[string]FieldFunc)}
}

// Register wires a field key to its resolver. Registration happens at
// startup, before any request is served.
func (p *FieldProvider) Register(key string, fn FieldFunc) error {
	if fn == nil {
		return fmt.Errorf("field %q: nil resolver", key)
	}
	p.fields[key] = fn
	return nil
}

// Get resolves the field for an item. An unregistered key yields a nil value,
// not an error; the renderer turns it into empty output.
func (p *FieldProvider) Get(ctx context.Context, itemID, key string) (any, error) {
	fn, ok := p.fields[key]
	if !ok {
		return nil, nil
	}
	return fn(ctx, itemID)
}
