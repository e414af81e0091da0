package synth

import (
	"sort"
	"strings"
)

// jsonMediaType is the preferred media type for request and response bodies.
const jsonMediaType = "application/json"

// ContentEntry is one selected media-type entry from a content map.
type ContentEntry struct {
	// MediaType is the content map key, e.g. "application/json"
	MediaType string
	// Value is the media-type object (schema, example, encoding, ...)
	Value any
}

// Schema returns the entry's schema fragment, or nil when absent.
func (e ContentEntry) Schema() any {
	m, ok := e.Value.(map[string]any)
	if !ok {
		return nil
	}
	return m["schema"]
}

// PickContent selects the best-fit media-type entry out of a request or
// response content map. Precedence, first match wins:
//
//  1. the exact key "application/json"
//  2. a key matching application/*+json (vendor JSON media types)
//  3. the exact key "*/*"
//  4. any entry at all, as a best-effort fallback for non-JSON APIs
//
// Candidate scans use lexicographic key order so selection is
// deterministic regardless of map iteration order. An absent or empty
// content map reports no selection.
func PickContent(content map[string]any) (ContentEntry, bool) {
	if len(content) == 0 {
		return ContentEntry{}, false
	}

	if v, ok := content[jsonMediaType]; ok {
		return ContentEntry{MediaType: jsonMediaType, Value: v}, true
	}

	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.HasPrefix(k, "application/") && strings.HasSuffix(k, "+json") {
			return ContentEntry{MediaType: k, Value: content[k]}, true
		}
	}

	if v, ok := content["*/*"]; ok {
		return ContentEntry{MediaType: "*/*", Value: v}, true
	}

	return ContentEntry{MediaType: keys[0], Value: content[keys[0]]}, true
}
