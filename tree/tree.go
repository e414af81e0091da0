package tree

import "strings"

// TagNode groups the paths of one tag label. One TagNode exists per
// distinct label, including the synthetic "untagged" label.
type TagNode struct {
	// Name is the tag label
	Name string
	// Paths holds the tag's path nodes in first-seen order
	Paths []*PathNode
}

// PathNode groups the operations of one URL path within one tag.
// Nodes are tag-scoped, not globally unique by path string.
type PathNode struct {
	// Path is the URL path string, e.g. "/pets/{id}"
	Path string
	// Endpoints holds the path's operations in source verb order
	Endpoints []*EndpointNode
}

// EndpointNode is one HTTP operation. Its identity is the (verb, path)
// pair, unique within the parsed document.
type EndpointNode struct {
	// Verb is the lower-cased HTTP method, e.g. "get"
	Verb string
	// Path is the URL path string
	Path string
	// Tag is the grouping tag; never empty (defaults to "untagged")
	Tag string

	Summary     string
	Description string
	OperationID string

	// Parameters holds the operation's resolved parameters; empty when absent
	Parameters []any
	// RequestBody is the resolved request body, or nil when absent
	RequestBody any
	// Responses is the resolved responses mapping, or nil when absent
	Responses any

	// Raw is the unresolved operation fragment, kept for diagnostic display
	Raw map[string]any
}

// Method returns the upper-cased HTTP method, e.g. "GET".
func (e *EndpointNode) Method() string {
	return strings.ToUpper(e.Verb)
}

// Title returns a short display label for the endpoint: the summary when
// present, otherwise "METHOD /path".
func (e *EndpointNode) Title() string {
	if e.Summary != "" {
		return e.Summary
	}
	return e.Method() + " " + e.Path
}

// Endpoints returns every endpoint of the tag in path, then verb order.
func (t *TagNode) Endpoints() []*EndpointNode {
	var out []*EndpointNode
	for _, p := range t.Paths {
		out = append(out, p.Endpoints...)
	}
	return out
}
