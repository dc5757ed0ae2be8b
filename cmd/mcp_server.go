package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ariagrep/ariagrep/internal/aria"
	"github.com/ariagrep/ariagrep/internal/dom"
	"github.com/ariagrep/ariagrep/internal/locator"
	"github.com/ariagrep/ariagrep/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

// mcpServer wraps the MCP server.
type mcpServer struct {
	mcp *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with the ariagrep tools.
func newMCPServer() (*mcpServer, error) {
	s := &mcpServer{}
	s.mcp = mcpserver.NewMCPServer("ariagrep", version.Version)
	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// read
	s.mcp.AddTool(
		mcp.NewTool("read",
			mcp.WithDescription("Read the accessibility tree of an HTML document. Returns every exposed element with its ARIA role, accessible name, and state."),
			mcp.WithString("file", mcp.Description("Path to the HTML document")),
			mcp.WithString("html", mcp.Description("Inline HTML source (alternative to file)")),
			mcp.WithBoolean("include-hidden", mcp.Description("Include elements hidden from the accessibility tree")),
			mcp.WithString("roles", mcp.Description("Comma-separated roles to filter")),
			mcp.WithNumber("max-elements", mcp.Description("Max elements in output (0 = unlimited)")),
		),
		s.handleRead,
	)

	// find
	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Find elements in an HTML document by ARIA role and accessible name, the way assistive technology identifies them."),
			mcp.WithString("file", mcp.Description("Path to the HTML document")),
			mcp.WithString("html", mcp.Description("Inline HTML source (alternative to file)")),
			mcp.WithString("role", mcp.Description("ARIA role to match (e.g. 'button', 'textbox')")),
			mcp.WithString("name", mcp.Description("Accessible name to match (case-insensitive substring)")),
			mcp.WithBoolean("exact", mcp.Description("Require exact name match")),
			mcp.WithBoolean("include-hidden", mcp.Description("Match hidden elements too")),
			mcp.WithNumber("limit", mcp.Description("Max matching elements (default: 10)")),
		),
		s.handleFind,
	)
}

// loadToolDocument parses the document named by the file param, or the
// inline html param.
func loadToolDocument(params map[string]interface{}) (*dom.Document, error) {
	if html := stringParam(params, "html", ""); html != "" {
		return dom.ParseString(html)
	}
	file := stringParam(params, "file", "")
	if file == "" {
		return nil, fmt.Errorf("provide either file or html")
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dom.Parse(f)
}

func (s *mcpServer) handleRead(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	doc, err := loadToolDocument(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	includeHidden := boolParam(params, "include-hidden", false)
	roleSet := splitRoles(stringParam(params, "roles", ""))
	maxElements := intParam(params, "max-elements", 0)

	pass := aria.NewPass()
	pass.Open()
	defer pass.Close()

	var infos []elementInfo
	collectTree(pass, doc.DocumentElement(), includeHidden, roleSet, 0, maxElements, 0, &infos)
	if infos == nil {
		infos = []elementInfo{}
	}

	b, _ := yaml.Marshal(readResult{Elements: infos, Total: len(infos)})
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleFind(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	role := stringParam(params, "role", "")
	name := stringParam(params, "name", "")
	if role == "" && name == "" {
		return mcp.NewToolResultError("provide at least one of role or name"), nil
	}
	doc, err := loadToolDocument(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	q := locator.Query{
		Role:          role,
		Name:          name,
		Exact:         boolParam(params, "exact", false),
		IncludeHidden: boolParam(params, "include-hidden", false),
	}
	matches := runQuery(doc, q, intParam(params, "limit", 10))

	result := findResult{OK: true, Action: "find", Role: role, Name: name, Matches: matches, Total: len(matches)}
	if result.Matches == nil {
		result.Matches = []elementInfo{}
	}
	b, _ := yaml.Marshal(result)
	return mcp.NewToolResultText(string(b)), nil
}

// stringParam extracts a string parameter with a default.
func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

// boolParam extracts a bool parameter with a default.
func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// intParam extracts a number parameter with a default. MCP numbers arrive
// as float64.
func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key].(float64); ok {
		return int(v)
	}
	return def
}
