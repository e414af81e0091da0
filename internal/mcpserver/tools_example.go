package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apitree/apitree/export"
)

type exampleInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to read the endpoint from"`
	Method string    `json:"method"           jsonschema:"HTTP method of the endpoint, e.g. GET"`
	Path   string    `json:"path"             jsonschema:"URL path of the endpoint, e.g. /pets/{id}"`
	Target string    `json:"target,omitempty" jsonschema:"Which body to synthesize: response (default) or request"`
}

type exampleOutput struct {
	Method    string `json:"method"`
	Path      string `json:"path"`
	Target    string `json:"target"`
	MediaType string `json:"media_type,omitempty"`
	Status    string `json:"status,omitempty"`
	Example   any    `json:"example"`
}

func handleExample(_ context.Context, _ *mcp.CallToolRequest, input exampleInput) (*mcp.CallToolResult, exampleOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), exampleOutput{}, nil
	}
	endpoint, err := findEndpoint(doc, input.Method, input.Path)
	if err != nil {
		return errResult(err), exampleOutput{}, nil
	}

	target := input.Target
	if target == "" {
		target = "response"
	}
	var kind export.BlockKind
	switch target {
	case "response":
		kind = export.BlockResponse
	case "request":
		kind = export.BlockRequestBody
	default:
		return errResult(fmt.Errorf("invalid target %q; valid values: request, response", target)), exampleOutput{}, nil
	}

	req := export.NewBuilder().BuildRequest(endpoint)
	for _, block := range req.Blocks {
		if block.Kind != kind {
			continue
		}
		return nil, exampleOutput{
			Method:    endpoint.Method(),
			Path:      endpoint.Path,
			Target:    target,
			MediaType: block.MediaType,
			Status:    block.Status,
			Example:   block.Value,
		}, nil
	}
	return errResult(fmt.Errorf("%s %s declares no %s body", endpoint.Method(), endpoint.Path, target)), exampleOutput{}, nil
}
