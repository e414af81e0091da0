// Package resolver dereferences $ref pointers inside a parsed OpenAPI
// document and merges allOf compositions.
//
// Import path: github.com/apitree/apitree/resolver
//
// A [Resolver] is constructed per [parser.Document] and exposes a single
// operation, [Resolver.Resolve], that takes any schema-bearing fragment of
// the document and returns a fully expanded copy: no remaining $ref keys
// and all allOf branches folded, except for sentinel fragments produced
// when a reference cycle is detected.
//
// Resolution is soft-failing by design. A pointer that does not exist, or
// that does not start with "#/", resolves to an absent value rather than
// an error, so a single bad $ref never aborts a whole document. A ref that
// is already mid-resolution on the current call stack resolves to a
// sentinel: the original fragment plus a "circular": true marker.
//
// Two memo tables bound the work: one keyed by ref string (repeated
// references to the same pointer reuse the cached resolution) and one
// keyed by fragment identity (a fragment reached via two different paths
// resolves once, which also defuses diamond-shaped reference graphs).
// Caches are scoped to one Resolver and must not outlive its Document.
//
// Resolvers perform no I/O and are safe to use from multiple call sites as
// long as each call site owns its own instance.
package resolver
