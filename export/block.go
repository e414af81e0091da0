package export

import "github.com/apitree/apitree/tree"

// BlockKind identifies the type of one content block.
type BlockKind string

const (
	// BlockMethod is the HTTP method, in Text
	BlockMethod BlockKind = "method"
	// BlockURL is the request URL template, in Text
	BlockURL BlockKind = "url"
	// BlockHeaders is a table of header parameters, in Rows
	BlockHeaders BlockKind = "headers"
	// BlockQuery is a table of query parameters, in Rows
	BlockQuery BlockKind = "query"
	// BlockRequestBody is a synthesized request-body example, in Value
	BlockRequestBody BlockKind = "request-body"
	// BlockResponse is a synthesized response example, in Value
	BlockResponse BlockKind = "response"
)

// Block is one typed content block of a request document.
type Block struct {
	Kind BlockKind

	// Text carries method and url blocks
	Text string
	// Rows carries header and query table blocks
	Rows []ParamRow
	// Value carries example blocks as a plain value tree
	Value any
	// MediaType is the selected media type for example blocks
	MediaType string
	// Status is the response status code for response blocks
	Status string
}

// ParamRow is one row of a parameter table.
type ParamRow struct {
	Name        string
	Required    bool
	Description string
	// Example is a synthesized sample for the parameter's schema
	Example any
}

// Request is the document representation handed to the Driver for one
// endpoint. The Driver owns turning it into a persisted artifact.
type Request struct {
	// Title is a short display label for the artifact
	Title string
	// Endpoint is the source endpoint node
	Endpoint *tree.EndpointNode
	// Blocks is the flat, ordered content block list
	Blocks []Block
}
