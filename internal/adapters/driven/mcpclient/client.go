// Package mcpclient dials MCP servers for the driven adapters that
// consume them. It owns transport selection and the decoding of tool
// results; the adapters only know tool names and argument shapes.
package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
)

const clientName = "vendorsync"

// Options select how a server is reached. Endpoint takes the URL of a
// streamable HTTP server; Command spawns a stdio server process. Exactly
// one must be set, Endpoint winning when both are.
type Options struct {
	Endpoint string
	Command  string
	Args     []string
	Version  string
}

// Dial connects to the MCP server and completes the initialize
// handshake. Close the returned session when done.
func Dial(ctx context.Context, opts Options) (*mcp.ClientSession, error) {
	transport, err := opts.transport()
	if err != nil {
		return nil, err
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    clientName,
		Version: opts.Version,
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to mcp server: %w", err)
	}
	return session, nil
}

func (o Options) transport() (mcp.Transport, error) {
	switch {
	case o.Endpoint != "":
		return &mcp.StreamableClientTransport{Endpoint: o.Endpoint}, nil
	case o.Command != "":
		return &mcp.CommandTransport{Command: exec.Command(o.Command, o.Args...)}, nil
	default:
		return nil, fmt.Errorf("%w: no mcp endpoint or command configured", domain.ErrConfiguration)
	}
}

// CallTool invokes a tool and decodes its result into out, which may be
// nil when the caller only cares about success. Transport failures and
// tool-level errors both surface as ErrRemoteOperation.
func CallTool(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any, out any) error {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrRemoteOperation, name, err)
	}
	if result.IsError {
		return fmt.Errorf("%w: %s: %s", domain.ErrRemoteOperation, name, textContent(result))
	}
	if out == nil {
		return nil
	}
	return decodeResult(result, name, out)
}

// decodeResult prefers structured content and falls back to JSON in the
// first text block.
func decodeResult(result *mcp.CallToolResult, name string, out any) error {
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		if err == nil && json.Unmarshal(data, out) == nil {
			return nil
		}
	}

	text := textContent(result)
	if text == "" {
		return fmt.Errorf("%w: %s returned no content", domain.ErrRemoteOperation, name)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %s: decoding result: %v", domain.ErrRemoteOperation, name, err)
	}
	return nil
}

func textContent(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}
