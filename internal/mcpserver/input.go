package mcpserver

import (
	"fmt"
	"strings"

	"github.com/apitree/apitree/parser"
	"github.com/apitree/apitree/tree"
)

// maxInlineSize caps inline content so a hostile client cannot feed the
// parser arbitrarily large documents. File inputs are not capped.
const maxInlineSize = 4 << 20

// specInput represents the two ways a spec can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

// resolve parses the spec from whichever input was provided.
func (s specInput) resolve() (*parser.Document, error) {
	switch {
	case s.File != "" && s.Content != "":
		return nil, fmt.Errorf("exactly one of file or content must be provided (got both)")
	case s.File != "":
		return parser.New().ParseFile(s.File)
	case s.Content != "":
		if len(s.Content) > maxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead",
				len(s.Content), maxInlineSize)
		}
		return parser.Parse([]byte(s.Content))
	default:
		return nil, fmt.Errorf("exactly one of file or content must be provided (got neither)")
	}
}

// findEndpoint builds the tree for doc and returns the endpoint with the
// given method and path.
func findEndpoint(doc *parser.Document, method, path string) (*tree.EndpointNode, error) {
	if method == "" || path == "" {
		return nil, fmt.Errorf("both method and path are required")
	}
	verb := strings.ToLower(method)
	if !parser.IsHTTPMethod(verb) {
		return nil, fmt.Errorf("unknown HTTP method %q", method)
	}
	for _, tag := range tree.Build(doc) {
		for _, endpoint := range tag.Endpoints() {
			if endpoint.Verb == verb && endpoint.Path == path {
				return endpoint, nil
			}
		}
	}
	return nil, fmt.Errorf("no operation %s %s in document", strings.ToUpper(verb), path)
}
