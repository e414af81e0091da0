// Package parser parses and validates OpenAPI 3.x documents.
//
// Import path: github.com/apitree/apitree/parser
//
// The parser accepts raw document text in JSON or YAML, detects the format
// with a cheap heuristic (content starting with '{' or '[' is parsed as
// strict JSON, everything else as YAML), and produces an immutable
// [Document]: a generic value tree plus enough source structure to recover
// the key order of the original document.
//
// Validation is structural only: the openapi field must be present and
// start with "3.", and a paths field must be present. Failures surface as
// [specerrors.ParseError] or [specerrors.ValidationError] respectively.
//
// Example:
//
//	doc, err := parser.Parse(data)
//	if err != nil {
//		var vErr *specerrors.ValidationError
//		if errors.As(err, &vErr) {
//			log.Fatalf("not an OpenAPI 3.x document: missing %s", vErr.Field)
//		}
//		log.Fatal(err)
//	}
//	fmt.Printf("OpenAPI %s, %d paths\n", doc.Version, doc.Stats().PathCount)
//
// A Document is parsed once per load and should be treated as read-only;
// resolver caches and trees built from it are scoped to that instance.
package parser
