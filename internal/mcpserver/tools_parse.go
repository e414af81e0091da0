package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type parseInput struct {
	Spec specInput `json:"spec" jsonschema:"The OpenAPI document to parse"`
}

type parseServer struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type parseOutput struct {
	Version        string        `json:"version"`
	Title          string        `json:"title,omitempty"`
	Description    string        `json:"description,omitempty"`
	Format         string        `json:"format"`
	PathCount      int           `json:"path_count"`
	OperationCount int           `json:"operation_count"`
	TagCount       int           `json:"tag_count"`
	SchemaCount    int           `json:"schema_count"`
	Servers        []parseServer `json:"servers,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	stats := doc.Stats()
	output := parseOutput{
		Version:        doc.Version,
		Format:         string(doc.Format),
		PathCount:      stats.PathCount,
		OperationCount: stats.OperationCount,
		TagCount:       stats.TagCount,
		SchemaCount:    stats.SchemaCount,
	}
	if doc.Info != nil {
		output.Title = doc.Info.Title
		output.Description = doc.Info.Description
	}
	for _, s := range doc.Servers {
		output.Servers = append(output.Servers, parseServer{URL: s.URL, Description: s.Description})
	}

	return nil, output, nil
}
