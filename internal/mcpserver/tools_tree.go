package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apitree/apitree/tree"
)

type treeInput struct {
	Spec specInput `json:"spec"          jsonschema:"The OpenAPI document to build the tree from"`
	Tag  string    `json:"tag,omitempty" jsonschema:"Narrow the listing to one tag label"`
}

type treeEndpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Summary     string `json:"summary,omitempty"`
	OperationID string `json:"operation_id,omitempty"`
}

type treePath struct {
	Path      string         `json:"path"`
	Endpoints []treeEndpoint `json:"endpoints"`
}

type treeTag struct {
	Tag   string     `json:"tag"`
	Paths []treePath `json:"paths"`
}

type treeOutput struct {
	Tags []treeTag `json:"tags"`
}

func handleTree(_ context.Context, _ *mcp.CallToolRequest, input treeInput) (*mcp.CallToolResult, treeOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), treeOutput{}, nil
	}

	var output treeOutput
	for _, tag := range tree.Build(doc) {
		if input.Tag != "" && tag.Name != input.Tag {
			continue
		}
		out := treeTag{Tag: tag.Name}
		for _, path := range tag.Paths {
			p := treePath{Path: path.Path}
			for _, endpoint := range path.Endpoints {
				p.Endpoints = append(p.Endpoints, treeEndpoint{
					Method:      endpoint.Method(),
					Path:        endpoint.Path,
					Summary:     endpoint.Summary,
					OperationID: endpoint.OperationID,
				})
			}
			out.Paths = append(out.Paths, p)
		}
		output.Tags = append(output.Tags, out)
	}

	if input.Tag != "" && len(output.Tags) == 0 {
		return errResult(fmt.Errorf("no tag %q in document", input.Tag)), treeOutput{}, nil
	}
	return nil, output, nil
}
