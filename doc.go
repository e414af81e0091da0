// Package apitree turns OpenAPI 3.x documents into a browsable
// tag → path → operation tree with synthesized request and response
// examples, suitable for selective export as runnable request templates.
//
// # Overview
//
// The library consists of five primary packages:
//
//   - parser: Parse and validate OpenAPI 3.x documents (JSON or YAML)
//   - resolver: Dereference in-document $ref pointers with cycle detection
//     and allOf merge semantics
//   - tree: Build the ordered tag → path → operation hierarchy
//   - synth: Synthesize representative example values from schema fragments
//     and pick the best-fit media type from content maps
//   - export: Assemble typed content blocks per endpoint and drive
//     sequential materialization through a host-provided Driver
//
// # Quick Start
//
// Parse a document and build the browsing tree:
//
//	import (
//		"github.com/apitree/apitree/parser"
//		"github.com/apitree/apitree/tree"
//	)
//
//	doc, err := parser.Parse(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	tags := tree.Build(doc)
//	for _, tag := range tags {
//		fmt.Println(tag.Name)
//	}
//
// Synthesize an example for a response schema:
//
//	import (
//		"github.com/apitree/apitree/resolver"
//		"github.com/apitree/apitree/synth"
//	)
//
//	r := resolver.New(doc)
//	schema := r.Resolve(fragment)
//	example := synth.New().Synthesize(schema)
//
// # Reference Resolution
//
// Only in-document pointers of the form #/a/b/c are supported. A pointer
// that cannot be found resolves to an absent value rather than an error,
// so one bad $ref never aborts a whole document. Reference cycles resolve
// to a sentinel fragment carrying a circular: true marker.
//
// # Error Handling
//
// Fatal conditions (malformed input, missing openapi/paths fields) are
// reported through the specerrors package and support errors.Is and
// errors.As. Structurally odd but parseable schema fragments never error;
// they degrade to null or empty placeholders.
//
// # Command-Line Interface
//
// In addition to the library packages, apitree provides a command-line
// interface:
//
//	# Print the tag tree
//	apitree tree openapi.yaml
//
//	# Synthesize an example for one endpoint's response body
//	apitree example --method GET --path /pets openapi.yaml
//
//	# Export request templates for every operation
//	apitree export -o ./requests openapi.yaml
//
// Install the CLI:
//
//	go install github.com/apitree/apitree/cmd/apitree@latest
package apitree
