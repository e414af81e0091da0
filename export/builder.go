package export

import (
	"sort"
	"strings"

	"github.com/apitree/apitree/synth"
	"github.com/apitree/apitree/tree"
)

// Builder assembles the content blocks of one request document from an
// endpoint node.
type Builder struct {
	synth *synth.Synthesizer

	// BaseURL is prepended to the endpoint path in url blocks. Path
	// templating like {id} is left intact.
	BaseURL string
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithSynthesizer sets the example synthesizer. Useful for pinning the
// clock or adjusting the recursion cap.
func WithSynthesizer(s *synth.Synthesizer) BuilderOption {
	return func(b *Builder) {
		if s != nil {
			b.synth = s
		}
	}
}

// WithBaseURL sets the URL prefix for url blocks.
func WithBaseURL(base string) BuilderOption {
	return func(b *Builder) {
		b.BaseURL = strings.TrimRight(base, "/")
	}
}

// NewBuilder creates a Builder with a default synthesizer.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{synth: synth.New()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildRequest turns one endpoint into a request document. The block
// list always starts with method and url; the remaining blocks appear
// only when the endpoint carries the corresponding content.
func (b *Builder) BuildRequest(endpoint *tree.EndpointNode) Request {
	blocks := []Block{
		{Kind: BlockMethod, Text: endpoint.Method()},
		{Kind: BlockURL, Text: b.BaseURL + endpoint.Path},
	}

	if rows := b.paramRows(endpoint, "header"); len(rows) > 0 {
		blocks = append(blocks, Block{Kind: BlockHeaders, Rows: rows})
	}
	if rows := b.paramRows(endpoint, "query"); len(rows) > 0 {
		blocks = append(blocks, Block{Kind: BlockQuery, Rows: rows})
	}

	if body, ok := endpoint.RequestBody.(map[string]any); ok {
		if block, ok := b.exampleBlock(BlockRequestBody, body); ok {
			blocks = append(blocks, block)
		}
	}

	if block, ok := b.responseBlock(endpoint); ok {
		blocks = append(blocks, block)
	}

	return Request{
		Title:    endpoint.Title(),
		Endpoint: endpoint,
		Blocks:   blocks,
	}
}

// paramRows collects the endpoint's parameters of one location ("header"
// or "query") in declaration order.
func (b *Builder) paramRows(endpoint *tree.EndpointNode, in string) []ParamRow {
	var rows []ParamRow
	for _, p := range endpoint.Parameters {
		param, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if loc, _ := param["in"].(string); loc != in {
			continue
		}
		name, _ := param["name"].(string)
		if name == "" {
			continue
		}
		required, _ := param["required"].(bool)
		description, _ := param["description"].(string)

		row := ParamRow{Name: name, Required: required, Description: description}
		if example, ok := param["example"]; ok {
			row.Example = example
		} else if schema, ok := param["schema"].(map[string]any); ok {
			row.Example = b.synth.Synthesize(schema)
		}
		rows = append(rows, row)
	}
	return rows
}

// exampleBlock builds a body example block out of a request-body or
// response fragment carrying a content map. Author-supplied examples on
// the media-type object win over schema synthesis.
func (b *Builder) exampleBlock(kind BlockKind, fragment map[string]any) (Block, bool) {
	content, ok := fragment["content"].(map[string]any)
	if !ok {
		return Block{}, false
	}
	entry, ok := synth.PickContent(content)
	if !ok {
		return Block{}, false
	}

	block := Block{Kind: kind, MediaType: entry.MediaType}
	if media, ok := entry.Value.(map[string]any); ok {
		if example, ok := media["example"]; ok {
			block.Value = example
			return block, true
		}
	}
	block.Value = b.synth.Synthesize(entry.Schema())
	return block, true
}

// responseBlock builds the example block for the endpoint's primary
// response. The primary response is the lowest 2xx status code, then the
// lowest status code of any class, then "default".
func (b *Builder) responseBlock(endpoint *tree.EndpointNode) (Block, bool) {
	responses, ok := endpoint.Responses.(map[string]any)
	if !ok || len(responses) == 0 {
		return Block{}, false
	}

	status, ok := primaryStatus(responses)
	if !ok {
		return Block{}, false
	}
	response, ok := responses[status].(map[string]any)
	if !ok {
		return Block{}, false
	}

	block, ok := b.exampleBlock(BlockResponse, response)
	if !ok {
		return Block{}, false
	}
	block.Status = status
	return block, true
}

func primaryStatus(responses map[string]any) (string, bool) {
	codes := make([]string, 0, len(responses))
	hasDefault := false
	for k := range responses {
		if k == "default" {
			hasDefault = true
			continue
		}
		codes = append(codes, k)
	}
	sort.Strings(codes)

	for _, c := range codes {
		if strings.HasPrefix(c, "2") {
			return c, true
		}
	}
	if len(codes) > 0 {
		return codes[0], true
	}
	if hasDefault {
		return "default", true
	}
	return "", false
}
