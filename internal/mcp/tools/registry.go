// Package tools exposes the search session to MCP clients. Each tool call
// corresponds to one user input event of the session: an explicit search, a
// filter toggle, a resume upload, a page turn, a feedback click.
package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Option registers one tool group.
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
}

// Register applies the provided tool options.
func Register(server *sdkmcp.Server, opts ...Option) {
	reg := &registry{server: server}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
}

// textResult returns a text-only ToolResult.
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}
