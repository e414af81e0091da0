package resolver

import "reflect"

// Merge combines two resolved fragments under the allOf / sibling-override
// merge rule:
//
//   - if either side is absent (nil), the other side is returned
//   - two sequences produce their set union, preserving first-seen order
//     (this models OpenAPI's required-list semantics)
//   - two mappings merge recursively, key by key; b's allOf key is skipped
//     because allOf is always consumed by the resolver before merging
//   - anything else is a type mismatch and b wins outright
//
// Merge never mutates its operands; merged mappings are fresh maps.
func Merge(a, b any) any {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	if aMap, ok := a.(map[string]any); ok {
		if bMap, ok := b.(map[string]any); ok {
			return mergeMappings(aMap, bMap)
		}
		return b
	}

	if aSeq, ok := a.([]any); ok {
		if bSeq, ok := b.([]any); ok {
			return mergeSequences(aSeq, bSeq)
		}
		return b
	}

	return b
}

// mergeMappings merges b's keys on top of a's, recursing on shared keys.
func mergeMappings(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if k == "allOf" {
			continue
		}
		if existing, ok := out[k]; ok {
			out[k] = Merge(existing, v)
			continue
		}
		out[k] = v
	}
	return out
}

// mergeSequences returns the order-preserving set union of a and b.
// Elements may be mappings or sequences, so equality is structural.
func mergeSequences(a, b []any) []any {
	out := make([]any, 0, len(a)+len(b))
	out = append(out, a...)
	for _, candidate := range b {
		if !containsValue(out, candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

func containsValue(seq []any, v any) bool {
	for _, elem := range seq {
		if reflect.DeepEqual(elem, v) {
			return true
		}
	}
	return false
}
