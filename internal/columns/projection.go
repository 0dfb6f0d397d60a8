package columns

// VisibleColumns projects the registry onto a base key→title mapping owned by
// the host listing framework. Removed columns are deleted from the base set,
// declared columns are upserted with their title. Base ordering is preserved;
// keys the base set does not know yet are appended in declaration order.
func (r *Registry) VisibleColumns(base *OrderedMap[string]) *OrderedMap[string] {
	out := base.Clone()
	for _, key := range r.order {
		d := r.decls[key]
		if d.removed {
			out.Delete(key)
			continue
		}
		out.Set(key, d.spec.Title)
	}
	return out
}

// SortableColumns projects the registry onto a base key→sortID mapping. A
// declared column that is not sortable is dropped even when the base set
// contains it. A sortable column absent from the base set is added only when
// it is attribute-typed; other types need sort support the host already has,
// this layer does not invent it. The sortID of an attribute column is the
// column key itself.
func (r *Registry) SortableColumns(base *OrderedMap[string]) *OrderedMap[string] {
	out := base.Clone()
	for _, key := range r.order {
		d := r.decls[key]
		if d.removed || !d.spec.Sortable {
			out.Delete(key)
			continue
		}
		if _, ok := out.Get(key); ok {
			continue
		}
		if d.spec.Type == TypeAttribute {
			out.Set(key, key)
		}
	}
	return out
}
