// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes apitree capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apitree/apitree"
)

const serverInstructions = `apitree MCP server — parses OpenAPI 3.x specs, resolves $refs, and synthesizes ready-to-send request templates.

Tools:
- parse: structural summary of a spec (title, version, path/operation/tag counts)
- tree: the tag > path > operation hierarchy with resolved operations
- example: a synthesized example value for one endpoint's request or response body
- request: the full request-template block list (method, url, parameter tables, body and response examples) for one endpoint

Specs are provided per call via file (path on disk) or content (inline JSON or YAML). Unresolvable $refs degrade to absent values instead of failing the call; circular $refs surface as fragments marked "circular": true.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "apitree", Version: apitree.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse an OpenAPI 3.x document. Returns a structural summary: title, version, OAS version, source format, and path/operation/tag/schema counts. Validation requires an openapi 3.x version field and a paths section.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tree",
		Description: "Build the navigable tag > path > operation tree for an OpenAPI 3.x document. Tags are sorted by label; paths and operations keep document order. Operations without tags group under \"untagged\". Use tag to narrow the listing to one tag.",
	}, handleTree)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "example",
		Description: "Synthesize an example value for one endpoint's request or response body. Select the endpoint by method and path. Media types prefer application/json, then vendor +json types. Author-supplied const/enum/default/example values win over type-directed synthesis.",
	}, handleExample)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "request",
		Description: "Build the full request-template block list for one endpoint: method, url, header and query parameter tables, a synthesized request-body example, and a synthesized primary-response example. Select the endpoint by method and path.",
	}, handleRequest)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
