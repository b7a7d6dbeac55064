package kv

// PushFront inserts item at the head of items after dropping every element
// that same reports as equal to it, then truncates to limit entries.
// A limit <= 0 leaves the length unbounded. items is not modified.
func PushFront[T any](items []T, item T, same func(T) bool, limit int) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	for _, it := range items {
		if !same(it) {
			out = append(out, it)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Remove returns items without the elements matching match, and whether
// anything was removed. items is not modified.
func Remove[T any](items []T, match func(T) bool) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out, len(out) != len(items)
}
