package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apitree/apitree/export"
)

type requestInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The OpenAPI document to read the endpoint from"`
	Method  string    `json:"method"             jsonschema:"HTTP method of the endpoint, e.g. GET"`
	Path    string    `json:"path"               jsonschema:"URL path of the endpoint, e.g. /pets/{id}"`
	BaseURL string    `json:"base_url,omitempty" jsonschema:"Server URL prefix for the url block"`
}

type requestParam struct {
	Name        string `json:"name"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
	Example     any    `json:"example,omitempty"`
}

type requestBlock struct {
	Kind      string         `json:"kind"`
	Text      string         `json:"text,omitempty"`
	Rows      []requestParam `json:"rows,omitempty"`
	Value     any            `json:"value,omitempty"`
	MediaType string         `json:"media_type,omitempty"`
	Status    string         `json:"status,omitempty"`
}

type requestOutput struct {
	Title  string         `json:"title"`
	Tag    string         `json:"tag"`
	Blocks []requestBlock `json:"blocks"`
}

func handleRequest(_ context.Context, _ *mcp.CallToolRequest, input requestInput) (*mcp.CallToolResult, requestOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), requestOutput{}, nil
	}
	endpoint, err := findEndpoint(doc, input.Method, input.Path)
	if err != nil {
		return errResult(err), requestOutput{}, nil
	}

	builder := export.NewBuilder(export.WithBaseURL(input.BaseURL))
	req := builder.BuildRequest(endpoint)

	output := requestOutput{Title: req.Title, Tag: endpoint.Tag}
	for _, block := range req.Blocks {
		out := requestBlock{
			Kind:      string(block.Kind),
			Text:      block.Text,
			Value:     block.Value,
			MediaType: block.MediaType,
			Status:    block.Status,
		}
		for _, row := range block.Rows {
			out.Rows = append(out.Rows, requestParam{
				Name:        row.Name,
				Required:    row.Required,
				Description: row.Description,
				Example:     row.Example,
			})
		}
		output.Blocks = append(output.Blocks, out)
	}
	return nil, output, nil
}
