// Package puppeteer implements the browser automation port against an
// MCP-wrapped Puppeteer server.
package puppeteer

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/showroom-labs/vendorsync/internal/adapters/driven/mcpclient"
	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
)

// Tool names exposed by the Puppeteer server.
const (
	toolNavigate   = "puppeteer_navigate"
	toolScreenshot = "puppeteer_screenshot"
	toolFill       = "puppeteer_fill"
	toolEvaluate   = "puppeteer_evaluate"
)

// screenshotName labels captures on the server side.
const screenshotName = "vendorsync"

// Ensure Browser implements the interface.
var _ driven.BrowserAutomation = (*Browser)(nil)

// Browser is the MCP-backed implementation of driven.BrowserAutomation.
type Browser struct {
	session *mcp.ClientSession
}

// Connect dials the Puppeteer server.
func Connect(ctx context.Context, opts mcpclient.Options) (*Browser, error) {
	session, err := mcpclient.Dial(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("browser: %w", err)
	}
	return NewBrowser(session), nil
}

// NewBrowser wraps an established session.
func NewBrowser(session *mcp.ClientSession) *Browser {
	return &Browser{session: session}
}

// Close ends the session.
func (b *Browser) Close() error {
	return b.session.Close()
}

// Navigate loads a URL in the remote browser.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	return mcpclient.CallTool(ctx, b.session, toolNavigate, map[string]any{
		"url": url,
	}, nil)
}

// Screenshot captures the element matching selector, or the full page
// when selector is empty.
func (b *Browser) Screenshot(ctx context.Context, selector string) ([]byte, error) {
	args := map[string]any{
		"name":    screenshotName,
		"encoded": true,
	}
	if selector != "" {
		args["selector"] = selector
	}

	result, err := b.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolScreenshot,
		Arguments: args,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRemoteOperation, toolScreenshot, err)
	}
	if result.IsError {
		return nil, fmt.Errorf("%w: %s failed", domain.ErrRemoteOperation, toolScreenshot)
	}
	return imageBytes(result)
}

// FillForm types a value into the element matching selector.
func (b *Browser) FillForm(ctx context.Context, selector, value string) error {
	return mcpclient.CallTool(ctx, b.session, toolFill, map[string]any{
		"selector": selector,
		"value":    value,
	}, nil)
}

// Evaluate runs a JavaScript expression and returns its string result.
func (b *Browser) Evaluate(ctx context.Context, script string) (string, error) {
	result, err := b.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolEvaluate,
		Arguments: map[string]any{"script": script},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrRemoteOperation, toolEvaluate, err)
	}
	if result.IsError {
		return "", fmt.Errorf("%w: %s failed", domain.ErrRemoteOperation, toolEvaluate)
	}

	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			return text.Text, nil
		}
	}
	return "", fmt.Errorf("%w: %s returned no text content", domain.ErrRemoteOperation, toolEvaluate)
}

// imageBytes extracts the capture from the result. The server returns
// either an image block or base64 text.
func imageBytes(result *mcp.CallToolResult) ([]byte, error) {
	for _, content := range result.Content {
		switch c := content.(type) {
		case *mcp.ImageContent:
			return c.Data, nil
		case *mcp.TextContent:
			data, err := base64.StdEncoding.DecodeString(c.Text)
			if err == nil {
				return data, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s returned no image content", domain.ErrRemoteOperation, toolScreenshot)
}
