package parser

import (
	"go.yaml.in/yaml/v4"
)

// Info holds the subset of the OpenAPI info object that apitree surfaces.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Server is one entry of the OpenAPI servers list.
type Server struct {
	URL         string
	Description string
}

// Document is a parsed OpenAPI 3.x document.
//
// A Document owns two views of the same content: a generic value tree
// (map[string]any / []any / scalars) used for reference resolution and
// synthesis, and the underlying yaml.Node structure used to recover the
// key order of the source document where ordering matters (path and
// operation iteration).
//
// Documents are immutable once parsed. Resolver caches and trees built
// from a Document are scoped to that instance and must not be shared
// across reloads.
type Document struct {
	// Version is the value of the openapi field, e.g. "3.0.3"
	Version string
	// Info is the parsed info object, if present
	Info *Info
	// Servers is the parsed servers list, if present
	Servers []Server
	// Format is the detected source format
	Format SourceFormat
	// Source is an optional source identifier (file path or name)
	Source string

	raw  map[string]any
	root *yaml.Node
}

// Raw returns the document's generic value tree. Callers must treat the
// returned tree as read-only; fragments inside it are shared with resolver
// caches.
func (d *Document) Raw() map[string]any {
	return d.raw
}

// Paths returns the paths mapping, or nil when the paths value is absent
// or not a mapping (null, sequence, or scalar).
func (d *Document) Paths() map[string]any {
	paths, _ := d.raw["paths"].(map[string]any)
	return paths
}

// PathsNode returns the yaml mapping node for the paths value, or nil when
// absent or not a mapping. The node preserves source key order.
func (d *Document) PathsNode() *yaml.Node {
	node := mappingValue(d.rootNode(), "paths")
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

// rootNode returns the document's root mapping node, or nil.
func (d *Document) rootNode() *yaml.Node {
	if d.root == nil {
		return nil
	}
	node := d.root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

// mappingValue returns the value node for key within a mapping node.
// Returns nil when node is not a mapping or the key is absent.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// MappingKeys returns the keys of a mapping node in source order.
// Returns nil when node is not a mapping.
func MappingKeys(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// MappingChild returns the value node for key within a mapping node,
// or nil when absent. Exported counterpart of mappingValue for callers
// that walk path items in source order.
func MappingChild(node *yaml.Node, key string) *yaml.Node {
	return mappingValue(node, key)
}
