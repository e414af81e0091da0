package parser

import (
	"encoding/json"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/apitree/apitree/specerrors"
)

// Parser parses OpenAPI 3.x documents into a generic value tree.
type Parser struct {
	// ValidateStructure determines whether to verify the openapi version
	// field and the presence of paths after parsing. Enabled by default.
	ValidateStructure bool
	// SourceName is an optional identifier recorded on the parsed Document
	// and included in error messages.
	SourceName string
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{ValidateStructure: true}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// Parse parses raw document text with default settings.
// It is shorthand for parser.New().Parse(data).
func Parse(data []byte) (*Document, error) {
	return New().Parse(data)
}

// ParseFile reads and parses the document at path.
func (p *Parser) ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if p.SourceName == "" {
		saved := p.SourceName
		p.SourceName = path
		defer func() { p.SourceName = saved }()
	}
	return p.Parse(data)
}

// Parse parses raw document text in JSON or YAML format.
//
// The format is decided by a cheap heuristic: content whose first
// non-whitespace byte is '{' or '[' is treated as strict JSON; everything
// else is parsed as YAML. Malformed input returns a
// *specerrors.ParseError carrying the underlying decoder message. A
// well-formed document that is not OpenAPI 3.x returns a
// *specerrors.ValidationError naming the offending field.
func (p *Parser) Parse(data []byte) (*Document, error) {
	format := detectFormatFromContent(data)
	if format == SourceFormatUnknown {
		return nil, &specerrors.ParseError{
			Source:  p.SourceName,
			Message: "document is empty",
		}
	}

	if format == SourceFormatJSON {
		// Strict JSON parse so malformed JSON fails with a JSON decoder
		// message rather than being quietly accepted by the YAML parser.
		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, &specerrors.ParseError{
				Source: p.SourceName,
				Format: string(SourceFormatJSON),
				Cause:  err,
			}
		}
	}

	// YAML is a superset of JSON, so a single node decode serves both
	// formats and preserves source key order for the tree builder.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &specerrors.ParseError{
			Source: p.SourceName,
			Format: string(format),
			Cause:  err,
		}
	}

	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return nil, &specerrors.ParseError{
			Source:  p.SourceName,
			Format:  string(format),
			Message: "document root must be a mapping",
			Cause:   err,
		}
	}

	doc := &Document{
		Format: format,
		Source: p.SourceName,
		raw:    raw,
		root:   &node,
	}
	doc.Version, _ = raw["openapi"].(string)
	doc.Info = parseInfo(raw)
	doc.Servers = parseServers(raw)

	if p.ValidateStructure {
		if err := validateStructure(raw); err != nil {
			return nil, err
		}
	}

	p.log().Debug("parsed document",
		"format", format,
		"version", doc.Version,
		"paths", len(doc.Paths()))

	return doc, nil
}

// validateStructure checks the minimal OpenAPI 3.x document contract:
// an openapi field starting with "3." and a paths field.
func validateStructure(raw map[string]any) error {
	version, ok := raw["openapi"].(string)
	if !ok {
		return &specerrors.ValidationError{
			Field:   "openapi",
			Message: "field is required",
		}
	}
	if !strings.HasPrefix(version, "3.") {
		return &specerrors.ValidationError{
			Field:   "openapi",
			Value:   version,
			Message: "only OpenAPI 3.x documents are supported",
		}
	}
	if _, ok := raw["paths"]; !ok {
		return &specerrors.ValidationError{
			Field:   "paths",
			Message: "field is required",
		}
	}
	return nil
}

// parseInfo extracts the info object, if present.
func parseInfo(raw map[string]any) *Info {
	m, ok := raw["info"].(map[string]any)
	if !ok {
		return nil
	}
	info := &Info{}
	info.Title, _ = m["title"].(string)
	info.Version, _ = m["version"].(string)
	info.Description, _ = m["description"].(string)
	return info
}

// parseServers extracts the servers list, if present.
func parseServers(raw map[string]any) []Server {
	seq, ok := raw["servers"].([]any)
	if !ok {
		return nil
	}
	servers := make([]Server, 0, len(seq))
	for _, entry := range seq {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		var s Server
		s.URL, _ = m["url"].(string)
		s.Description, _ = m["description"].(string)
		servers = append(servers, s)
	}
	return servers
}
