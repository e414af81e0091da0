package tree

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/apitree/apitree/parser"
	"github.com/apitree/apitree/resolver"
)

// Builder assembles the tag tree for one document.
type Builder struct {
	doc    *parser.Document
	res    *resolver.Resolver
	logger parser.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithResolver sets the resolver used for operation fragments. By default
// the builder creates a fresh resolver scoped to the document; pass one in
// to share its caches with other consumers of the same document.
func WithResolver(res *resolver.Resolver) Option {
	return func(b *Builder) {
		if res != nil {
			b.res = res
		}
	}
}

// WithLogger sets the structured logger for walk diagnostics.
func WithLogger(logger parser.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a Builder for doc.
func NewBuilder(doc *parser.Document, opts ...Option) *Builder {
	b := &Builder{
		doc:    doc,
		logger: parser.NopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.res == nil {
		b.res = resolver.New(doc)
	}
	return b
}

// Build is shorthand for NewBuilder(doc, opts...).Build().
func Build(doc *parser.Document, opts ...Option) []*TagNode {
	return NewBuilder(doc, opts...).Build()
}

// Build walks the document's paths and returns the ordered TagNode
// sequence. A paths value that is not a proper mapping yields an empty
// sequence; malformed path items and operations are skipped.
func (b *Builder) Build() []*TagNode {
	pathsNode := b.doc.PathsNode()
	paths := b.doc.Paths()
	if pathsNode == nil || paths == nil {
		return []*TagNode{}
	}

	tags := make(map[string]*TagNode)
	pathNodes := make(map[string]map[string]*PathNode)
	var order []*TagNode

	for _, path := range parser.MappingKeys(pathsNode) {
		pathItem, ok := paths[path].(map[string]any)
		if !ok {
			b.logger.Debug("skipping non-mapping path item", "path", path)
			continue
		}
		itemNode := parser.MappingChild(pathsNode, path)

		for _, key := range parser.MappingKeys(itemNode) {
			verb := strings.ToLower(key)
			if !parser.IsHTTPMethod(verb) {
				continue
			}
			op, ok := pathItem[key].(map[string]any)
			if !ok {
				b.logger.Debug("skipping non-mapping operation", "path", path, "method", verb)
				continue
			}

			endpoint := b.buildEndpoint(verb, path, op)

			tag := tags[endpoint.Tag]
			if tag == nil {
				tag = &TagNode{Name: endpoint.Tag}
				tags[endpoint.Tag] = tag
				pathNodes[endpoint.Tag] = make(map[string]*PathNode)
				order = append(order, tag)
			}

			pathNode := pathNodes[endpoint.Tag][path]
			if pathNode == nil {
				pathNode = &PathNode{Path: path}
				pathNodes[endpoint.Tag][path] = pathNode
				tag.Paths = append(tag.Paths, pathNode)
			}

			appendEndpoint(pathNode, endpoint)
		}
	}

	// Tags are presented in collated label order; paths and endpoints
	// keep their walk order.
	collator := collate.New(language.Und)
	sort.Slice(order, func(i, j int) bool {
		return collator.CompareString(order[i].Name, order[j].Name) < 0
	})

	return order
}

// appendEndpoint adds endpoint to the path node. A duplicate verb under
// the same path item overwrites the earlier endpoint in place, keeping the
// (verb, path) identity unique.
func appendEndpoint(pathNode *PathNode, endpoint *EndpointNode) {
	for i, existing := range pathNode.Endpoints {
		if existing.Verb == endpoint.Verb {
			pathNode.Endpoints[i] = endpoint
			return
		}
	}
	pathNode.Endpoints = append(pathNode.Endpoints, endpoint)
}

// buildEndpoint resolves one operation fragment into an EndpointNode.
func (b *Builder) buildEndpoint(verb, path string, op map[string]any) *EndpointNode {
	endpoint := &EndpointNode{
		Verb: verb,
		Path: path,
		Tag:  operationTag(op),
		Raw:  op,
	}
	endpoint.Summary, _ = op["summary"].(string)
	endpoint.Description, _ = op["description"].(string)
	endpoint.OperationID, _ = op["operationId"].(string)

	endpoint.Parameters = b.resolveParameters(op["parameters"])
	if body, ok := op["requestBody"]; ok {
		endpoint.RequestBody = b.res.Resolve(body)
	}
	// The whole responses mapping resolves as one fragment so shared
	// response definitions behave the same as embedded $refs.
	if responses, ok := op["responses"]; ok {
		endpoint.Responses = b.res.Resolve(responses)
	}

	return endpoint
}

// resolveParameters resolves each parameter independently. Absent or
// malformed parameter lists yield an empty sequence; entries whose $ref
// cannot be resolved are dropped.
func (b *Builder) resolveParameters(value any) []any {
	seq, ok := value.([]any)
	if !ok {
		return []any{}
	}
	out := make([]any, 0, len(seq))
	for _, elem := range seq {
		resolved := b.res.Resolve(elem)
		if resolved == nil {
			continue
		}
		out = append(out, resolved)
	}
	return out
}

// operationTag returns the operation's first declared non-empty tag, or
// the synthetic "untagged" label. Additional tags stay on the raw
// operation but do not create additional tree placements.
func operationTag(op map[string]any) string {
	tags, ok := op["tags"].([]any)
	if !ok || len(tags) == 0 {
		return parser.UntaggedLabel
	}
	first, _ := tags[0].(string)
	if first == "" {
		return parser.UntaggedLabel
	}
	return first
}
