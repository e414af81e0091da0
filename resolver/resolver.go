package resolver

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/apitree/apitree/parser"
	"github.com/apitree/apitree/specerrors"
)

const (
	// MaxResolveDepth is the maximum recursion depth for fragment resolution.
	// Cycle detection and memoization bound the work on any real document;
	// this cap is a stack-overflow guard for pathological nesting.
	MaxResolveDepth = 100

	// CircularKey marks a sentinel fragment substituted for a detected
	// reference cycle. The sentinel is the original fragment plus
	// CircularKey set to true; its $ref key is left in place.
	CircularKey = "circular"
)

// Resolver dereferences fragments of one Document.
//
// All caches are scoped to the Resolver instance. Create a fresh Resolver
// per Document; never share one across reloads.
type Resolver struct {
	doc    *parser.Document
	logger parser.Logger

	// byRef caches resolved pointer targets keyed by ref string
	byRef map[string]any
	// byFrag caches resolved fragments keyed by map/slice identity, so a
	// fragment reached via two different paths resolves once
	byFrag map[uintptr]fragMemo
	// resolving tracks refs currently being resolved on the call stack,
	// purely for cycle detection
	resolving map[string]bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the structured logger used for soft-failure diagnostics.
func WithLogger(logger parser.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver closed over doc.
func New(doc *parser.Document, opts ...Option) *Resolver {
	r := &Resolver{
		doc:       doc,
		logger:    parser.NopLogger{},
		byRef:     make(map[string]any),
		byFrag:    make(map[uintptr]fragMemo),
		resolving: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns a fully dereferenced copy of fragment: no $ref keys
// remain (other than inside circular sentinels) and allOf compositions are
// merged. Non-mapping, non-sequence values are returned unchanged. An
// unresolvable pointer yields nil, which callers must treat as "schema
// unknown".
func (r *Resolver) Resolve(fragment any) any {
	return r.resolve(fragment, 0)
}

func (r *Resolver) resolve(fragment any, depth int) any {
	if depth > MaxResolveDepth {
		r.logger.Warn("resolution depth limit reached, leaving fragment unresolved",
			"limit", MaxResolveDepth)
		return fragment
	}

	switch v := fragment.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok {
			return r.resolveRef(v, ref, depth)
		}
		if _, ok := v["allOf"]; ok {
			return r.resolveAllOf(v, depth)
		}
		return r.resolveMapping(v, depth)

	case []any:
		return r.resolveSequence(v, depth)

	default:
		return fragment
	}
}

// resolveRef handles a fragment bearing a $ref key. Sibling keys are
// merged on top of the resolved target, with local keys winning.
func (r *Resolver) resolveRef(fragment map[string]any, ref string, depth int) any {
	if r.resolving[ref] {
		// Cycle: substitute a sentinel instead of recursing forever.
		r.logger.Debug("circular reference detected", "ref", ref)
		sentinel := make(map[string]any, len(fragment)+1)
		for k, val := range fragment {
			sentinel[k] = val
		}
		sentinel[CircularKey] = true
		return sentinel
	}

	resolved, cached := r.byRef[ref]
	if !cached {
		target, found := r.lookup(ref)
		if !found {
			// Soft failure: a bad $ref must not abort the document.
			r.logger.Debug("unresolved reference, treating as absent", "ref", ref)
			return nil
		}
		r.resolving[ref] = true
		resolved = r.resolve(target, depth+1)
		delete(r.resolving, ref)
		r.byRef[ref] = resolved
	}

	// OpenAPI allows limited sibling overrides next to $ref.
	siblings := make(map[string]any, len(fragment))
	for k, val := range fragment {
		if k == "$ref" {
			continue
		}
		siblings[k] = val
	}
	if len(siblings) == 0 {
		return resolved
	}
	return Merge(resolved, r.resolve(siblings, depth+1))
}

// resolveAllOf folds the allOf branches left to right into an accumulator,
// then merges the fragment's remaining keys on top so local keys win.
func (r *Resolver) resolveAllOf(fragment map[string]any, depth int) any {
	branches, _ := fragment["allOf"].([]any)

	var acc any = map[string]any{}
	for _, branch := range branches {
		acc = Merge(acc, r.resolve(branch, depth+1))
	}

	rest := make(map[string]any, len(fragment))
	for k, val := range fragment {
		if k == "allOf" {
			continue
		}
		rest[k] = val
	}
	if len(rest) == 0 {
		return acc
	}
	return Merge(acc, r.resolve(rest, depth+1))
}

// fragMemo is one entry of the fragment-identity cache. The input fragment
// is retained so its address cannot be reused for a different map after a
// garbage collection, which would make the uintptr key collide.
type fragMemo struct {
	in  any
	out any
}

// resolveMapping resolves every value of a plain mapping, memoized by the
// mapping's identity. A value that resolves to absent (a broken $ref) is
// dropped from the output.
func (r *Resolver) resolveMapping(fragment map[string]any, depth int) any {
	key := reflect.ValueOf(fragment).Pointer()
	if memo, ok := r.byFrag[key]; ok {
		return memo.out
	}

	out := make(map[string]any, len(fragment))
	for k, val := range fragment {
		resolved := r.resolve(val, depth+1)
		if resolved == nil && val != nil {
			continue
		}
		out[k] = resolved
	}
	r.byFrag[key] = fragMemo{in: fragment, out: out}
	return out
}

// resolveSequence resolves each element independently, preserving order.
func (r *Resolver) resolveSequence(fragment []any, depth int) any {
	if len(fragment) == 0 {
		return []any{}
	}
	key := reflect.ValueOf(fragment).Pointer()
	if memo, ok := r.byFrag[key]; ok {
		return memo.out
	}

	out := make([]any, len(fragment))
	for i, elem := range fragment {
		out[i] = r.resolve(elem, depth+1)
	}
	r.byFrag[key] = fragMemo{in: fragment, out: out}
	return out
}

// lookup walks the document to the target of an in-document pointer.
// Only pointers starting with "#/" are supported; anything else reports
// not found. Path segments are unescaped per RFC 6901 (~1 -> /, ~0 -> ~).
func (r *Resolver) lookup(ref string) (any, bool) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}

	current := any(r.doc.Raw())
	rest := strings.TrimPrefix(ref, "#/")
	if rest == "" {
		return current, true
	}

	for _, segment := range strings.Split(rest, "/") {
		segment = unescapePointerToken(segment)

		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next

		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]

		default:
			return nil, false
		}
	}

	return current, true
}

// Lookup resolves one explicit pointer and returns the dereferenced
// target. Unlike Resolve's soft failure, a missing target returns a
// *specerrors.ReferenceError so interactive callers (CLI, MCP tools) can
// report which pointer was bad.
func (r *Resolver) Lookup(ref string) (any, error) {
	target, found := r.lookup(ref)
	if !found {
		return nil, &specerrors.ReferenceError{
			Ref:          ref,
			IsUnresolved: true,
			Message:      "pointer target not found in document",
		}
	}
	return r.Resolve(target), nil
}

// unescapePointerToken unescapes JSON Pointer tokens.
// Per RFC 6901, ~1 represents / and ~0 represents ~.
func unescapePointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}
