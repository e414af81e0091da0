// Package tree builds the browsable tag → path → operation hierarchy from
// a parsed OpenAPI document.
//
// Import path: github.com/apitree/apitree/tree
//
// [Build] walks the document's paths in source order, filters path-item
// keys to the recognized HTTP verbs, resolves each operation's parameters,
// request body, and responses through a [resolver.Resolver], and groups
// the resulting endpoints by their first declared tag. Operations without
// tags land under the synthetic "untagged" group.
//
// Ordering is deterministic: tags sort by label using locale-aware
// collation, paths keep first-seen order within their tag, and endpoints
// keep the source order of the verbs inside each path item. Path nodes are
// tag-scoped: the same URL path appearing under two different tags
// produces two distinct PathNodes.
//
// The tree is rebuilt from scratch on every parse; there is no incremental
// update.
package tree
