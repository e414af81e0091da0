package synth

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMaxDepth is the recursion cap for schema synthesis. It guarantees
// termination on self-referential schemas that survived dereferencing as
// expanded, deeply nested structures.
const DefaultMaxDepth = 8

// placeholderEmail is the fixed sample for string schemas with format email.
const placeholderEmail = "user@example.com"

// Synthesizer builds example values from schema fragments.
type Synthesizer struct {
	// Now supplies the current time for date and date-time formats.
	// Defaults to time.Now; tests inject a fixed clock.
	Now func() time.Time
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}

// New creates a Synthesizer with default settings.
func New() *Synthesizer {
	return &Synthesizer{Now: time.Now}
}

// Synthesize returns a structurally valid sample value for schema, or nil
// when no shape can be determined. The result contains only plain values:
// nested map[string]any, []any, and primitives.
func (s *Synthesizer) Synthesize(schema any) any {
	return s.synthesize(schema, 0)
}

func (s *Synthesizer) maxDepth() int {
	if s.MaxDepth > 0 {
		return s.MaxDepth
	}
	return DefaultMaxDepth
}

func (s *Synthesizer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Synthesizer) synthesize(schema any, depth int) any {
	if depth > s.maxDepth() {
		return nil
	}

	m, ok := schema.(map[string]any)
	if !ok {
		return nil
	}

	// Author-supplied values take precedence over synthesis.
	if v, ok := m["const"]; ok {
		return v
	}
	if enum, ok := m["enum"].([]any); ok && len(enum) > 0 {
		return enum[0]
	}
	if v, ok := m["default"]; ok {
		return v
	}
	if v, ok := m["example"]; ok {
		return v
	}

	switch schemaType(m) {
	case "object":
		return s.synthesizeObject(m, depth)
	case "array":
		return s.synthesizeArray(m, depth)
	case "integer", "number":
		return 0
	case "boolean":
		return false
	case "string":
		return s.synthesizeString(m)
	}

	return s.synthesizeCombinator(m, depth)
}

// schemaType returns the declared type, inferring "object" when properties
// is present without an explicit type and "array" when items is present.
func schemaType(m map[string]any) string {
	if t, ok := m["type"].(string); ok && t != "" {
		return t
	}
	if _, ok := m["properties"]; ok {
		return "object"
	}
	if _, ok := m["items"]; ok {
		return "array"
	}
	return ""
}

func (s *Synthesizer) synthesizeObject(m map[string]any, depth int) any {
	// Always a mapping, even when empty, so callers can still render an
	// editable placeholder.
	out := map[string]any{}
	props, ok := m["properties"].(map[string]any)
	if !ok {
		return out
	}
	for name, prop := range props {
		out[name] = s.synthesize(prop, depth+1)
	}
	return out
}

// synthesizeArray samples items exactly once; arrays are never synthesized
// with more than one representative element.
func (s *Synthesizer) synthesizeArray(m map[string]any, depth int) any {
	items, ok := m["items"]
	if !ok {
		return []any{}
	}
	return []any{s.synthesize(items, depth+1)}
}

func (s *Synthesizer) synthesizeString(m map[string]any) any {
	format, _ := m["format"].(string)
	switch format {
	case "date-time":
		return s.now().UTC().Format(time.RFC3339)
	case "date":
		return s.now().UTC().Format("2006-01-02")
	case "uuid":
		return uuid.Nil.String()
	case "email":
		return placeholderEmail
	default:
		return "string"
	}
}

// synthesizeCombinator handles schemas with no determinable type: the
// first anyOf branch, then the first oneOf branch, then the fold of all
// allOf branches, else nil. Circular sentinels land here and synthesize
// to nil.
func (s *Synthesizer) synthesizeCombinator(m map[string]any, depth int) any {
	if anyOf, ok := m["anyOf"].([]any); ok && len(anyOf) > 0 {
		return s.synthesize(anyOf[0], depth+1)
	}
	if oneOf, ok := m["oneOf"].([]any); ok && len(oneOf) > 0 {
		return s.synthesize(oneOf[0], depth+1)
	}
	if allOf, ok := m["allOf"].([]any); ok && len(allOf) > 0 {
		var acc any
		for _, branch := range allOf {
			acc = combineSamples(acc, s.synthesize(branch, depth+1))
		}
		return acc
	}
	return nil
}

// combineSamples folds two allOf branch samples: mappings shallow-merge,
// otherwise whichever side produced a non-null value wins (later branches
// over earlier ones).
func combineSamples(a, b any) any {
	aMap, aOK := a.(map[string]any)
	bMap, bOK := b.(map[string]any)
	if aOK && bOK {
		out := make(map[string]any, len(aMap)+len(bMap))
		for k, v := range aMap {
			out[k] = v
		}
		for k, v := range bMap {
			out[k] = v
		}
		return out
	}
	if b != nil {
		return b
	}
	return a
}
