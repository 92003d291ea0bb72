// Package services contains domain services for the build profile domain.
// These are stateless services that encapsulate business logic.
package services

// ===== DEEP COPY UTILITIES =====
//
// Raw profile fields come straight from the parsed document. Merging must
// never hand out references into the document, which is shared by every
// resolution made through the same reader.

// DeepCopyValue copies a raw document value. Maps and slices are copied
// recursively; scalars are returned as-is.
func DeepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CopyFields(t)
	case []any:
		dst := make([]any, len(t))
		for i, item := range t {
			dst[i] = DeepCopyValue(item)
		}
		return dst
	default:
		return v
	}
}

// CopyFields creates a deep copy of a raw field set.
func CopyFields(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = DeepCopyValue(v)
	}
	return dst
}
