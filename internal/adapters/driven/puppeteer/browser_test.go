package puppeteer

import (
	"context"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
)

type navigateInput struct {
	URL string `json:"url"`
}

type screenshotInput struct {
	Name     string `json:"name"`
	Selector string `json:"selector,omitempty"`
	Encoded  bool   `json:"encoded,omitempty"`
}

type fillInput struct {
	Selector string `json:"selector"`
	Value    string `json:"value"`
}

type evaluateInput struct {
	Script string `json:"script"`
}

// fakePuppeteer is an in-process Puppeteer server recording calls.
type fakePuppeteer struct {
	server *mcp.Server

	lastURL    string
	lastShot   screenshotInput
	lastFill   fillInput
	lastScript string

	image       []byte
	pageText    string
	navigateErr string
}

func newFakePuppeteer() *fakePuppeteer {
	f := &fakePuppeteer{
		server: mcp.NewServer(&mcp.Implementation{Name: "puppeteer", Version: "test"}, nil),
	}

	mcp.AddTool(f.server, &mcp.Tool{Name: "puppeteer_navigate"}, func(_ context.Context, _ *mcp.CallToolRequest, in navigateInput) (*mcp.CallToolResult, struct{}, error) {
		f.lastURL = in.URL
		if f.navigateErr != "" {
			return nil, struct{}{}, fmt.Errorf("%s", f.navigateErr)
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Navigated to " + in.URL}},
		}, struct{}{}, nil
	})
	mcp.AddTool(f.server, &mcp.Tool{Name: "puppeteer_screenshot"}, func(_ context.Context, _ *mcp.CallToolRequest, in screenshotInput) (*mcp.CallToolResult, struct{}, error) {
		f.lastShot = in
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.ImageContent{Data: f.image, MIMEType: "image/png"}},
		}, struct{}{}, nil
	})
	mcp.AddTool(f.server, &mcp.Tool{Name: "puppeteer_fill"}, func(_ context.Context, _ *mcp.CallToolRequest, in fillInput) (*mcp.CallToolResult, struct{}, error) {
		f.lastFill = in
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "ok"}},
		}, struct{}{}, nil
	})
	mcp.AddTool(f.server, &mcp.Tool{Name: "puppeteer_evaluate"}, func(_ context.Context, _ *mcp.CallToolRequest, in evaluateInput) (*mcp.CallToolResult, struct{}, error) {
		f.lastScript = in.Script
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: f.pageText}},
		}, struct{}{}, nil
	})

	return f
}

func connect(t *testing.T, fake *fakePuppeteer) *Browser {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := fake.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Wait() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	browser := NewBrowser(session)
	t.Cleanup(func() { _ = browser.Close() })
	return browser
}

func TestNavigate(t *testing.T) {
	fake := newFakePuppeteer()
	browser := connect(t, fake)

	err := browser.Navigate(context.Background(), "https://vendor.example/bifold")

	require.NoError(t, err)
	assert.Equal(t, "https://vendor.example/bifold", fake.lastURL)
}

func TestNavigate_ToolError(t *testing.T) {
	fake := newFakePuppeteer()
	fake.navigateErr = "net::ERR_NAME_NOT_RESOLVED"
	browser := connect(t, fake)

	err := browser.Navigate(context.Background(), "https://nope.invalid")

	assert.ErrorIs(t, err, domain.ErrRemoteOperation)
}

func TestScreenshot(t *testing.T) {
	fake := newFakePuppeteer()
	fake.image = []byte{0x89, 'P', 'N', 'G'}
	browser := connect(t, fake)

	image, err := browser.Screenshot(context.Background(), ".product-image")

	require.NoError(t, err)
	assert.Equal(t, fake.image, image)
	assert.Equal(t, ".product-image", fake.lastShot.Selector)
	assert.Equal(t, screenshotName, fake.lastShot.Name)
	assert.True(t, fake.lastShot.Encoded)
}

func TestScreenshot_FullPage(t *testing.T) {
	fake := newFakePuppeteer()
	fake.image = []byte{1}
	browser := connect(t, fake)

	_, err := browser.Screenshot(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, fake.lastShot.Selector)
}

func TestFillForm(t *testing.T) {
	fake := newFakePuppeteer()
	browser := connect(t, fake)

	err := browser.FillForm(context.Background(), "#search", "bifold")

	require.NoError(t, err)
	assert.Equal(t, "#search", fake.lastFill.Selector)
	assert.Equal(t, "bifold", fake.lastFill.Value)
}

func TestEvaluate(t *testing.T) {
	fake := newFakePuppeteer()
	fake.pageText = "<html><body><h1>FLAIR Bifold Door</h1></body></html>"
	browser := connect(t, fake)

	html, err := browser.Evaluate(context.Background(), "document.documentElement.outerHTML")

	require.NoError(t, err)
	assert.Equal(t, fake.pageText, html)
	assert.Equal(t, "document.documentElement.outerHTML", fake.lastScript)
}
