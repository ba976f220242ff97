package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/adbpilot/pkg/adb"
	"github.com/devicelab-dev/adbpilot/pkg/device"
	"github.com/devicelab-dev/adbpilot/pkg/logger"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Run an MCP server exposing device automation tools",
	Description: `Serve the Model Context Protocol so agents can drive devices through
the same operations the CLI offers: element discovery, input,
screenshots, and app lifecycle.

Examples:
  adbpilot serve
  adbpilot serve --transport streamable-http --port 8931`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "transport",
			Usage: "Transport: stdio or streamable-http",
			Value: "stdio",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "Listen port for the streamable-http transport",
			Value: 8931,
		},
	},
	Action: runServe,
}

// mcpServer wraps the MCP server with per-serial driver sessions. Sessions
// are created on first use and reused, so snapshot caches survive across
// tool calls.
type mcpServer struct {
	adbPath string
	mcp     *mcpserver.MCPServer

	mu       sync.Mutex
	sessions map[string]*device.Driver
}

func newMCPServer(adbPath string) *mcpServer {
	s := &mcpServer{
		adbPath:  adbPath,
		sessions: make(map[string]*device.Driver),
		mcp:      mcpserver.NewMCPServer("adbpilot", Version),
	}
	s.registerTools()
	return s
}

func (s *mcpServer) serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

// driver returns the session for a serial, creating it on first use.
// An empty serial auto-detects and shares one session.
func (s *mcpServer) driver(serial string) (*device.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.sessions[serial]; ok {
		return d, nil
	}
	d, err := device.Connect(s.adbPath, serial)
	if err != nil {
		return nil, err
	}
	s.sessions[serial] = d
	return d, nil
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("devices",
			mcp.WithDescription("List Android devices known to the adb server"),
		),
		s.handleDevices,
	)

	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Find UI elements in the device's accessibility tree. Returns attributes, bounding box, and click point."),
			mcp.WithString("value", mcp.Description("Locator value to match"), mcp.Required()),
			mcp.WithString("by", mcp.Description("Locator strategy: id, name, or class (default name)")),
			mcp.WithBoolean("all", mcp.Description("Return every match instead of the first")),
			mcp.WithBoolean("refresh", mcp.Description("Force a fresh snapshot before searching")),
			mcp.WithString("serial", mcp.Description("Device serial (empty = auto-detect)")),
		),
		s.handleFind,
	)

	s.mcp.AddTool(
		mcp.NewTool("hierarchy",
			mcp.WithDescription("Dump the UI hierarchy and return every node's attributes in document order"),
			mcp.WithString("serial", mcp.Description("Device serial (empty = auto-detect)")),
		),
		s.handleHierarchy,
	)

	s.mcp.AddTool(
		mcp.NewTool("tap",
			mcp.WithDescription("Tap a screen coordinate"),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
			mcp.WithString("serial", mcp.Description("Device serial (empty = auto-detect)")),
		),
		s.handleTap,
	)

	s.mcp.AddTool(
		mcp.NewTool("swipe",
			mcp.WithDescription("Swipe between two screen coordinates"),
			mcp.WithNumber("x1", mcp.Description("Start X"), mcp.Required()),
			mcp.WithNumber("y1", mcp.Description("Start Y"), mcp.Required()),
			mcp.WithNumber("x2", mcp.Description("End X"), mcp.Required()),
			mcp.WithNumber("y2", mcp.Description("End Y"), mcp.Required()),
			mcp.WithNumber("duration", mcp.Description("Gesture duration in ms (default 300)")),
			mcp.WithString("serial", mcp.Description("Device serial (empty = auto-detect)")),
		),
		s.handleSwipe,
	)

	s.mcp.AddTool(
		mcp.NewTool("text",
			mcp.WithDescription("Type ASCII text on the device"),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
			mcp.WithString("serial", mcp.Description("Device serial (empty = auto-detect)")),
		),
		s.handleText,
	)

	s.mcp.AddTool(
		mcp.NewTool("keyevent",
			mcp.WithDescription("Send an Android key event code (3 = HOME, 4 = BACK, 66 = ENTER)"),
			mcp.WithNumber("code", mcp.Description("Key event code"), mcp.Required()),
			mcp.WithString("serial", mcp.Description("Device serial (empty = auto-detect)")),
		),
		s.handleKeyevent,
	)

	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the device screen as PNG"),
			mcp.WithString("serial", mcp.Description("Device serial (empty = auto-detect)")),
		),
		s.handleScreenshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("app_start",
			mcp.WithDescription("Start an activity by component name (package/activity)"),
			mcp.WithString("component", mcp.Description("Component name"), mcp.Required()),
			mcp.WithString("serial", mcp.Description("Device serial (empty = auto-detect)")),
		),
		s.handleAppStart,
	)
}

func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key].(float64); ok {
		return int(v)
	}
	return def
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

func yamlResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleDevices(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	adbPath := s.adbPath
	if adbPath == "" {
		var err error
		adbPath, err = adb.FindADB()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	entries, err := adb.Devices(adbPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(entries)
}

func (s *mcpServer) handleFind(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	value := stringParam(params, "value", "")
	if value == "" {
		return mcp.NewToolResultError("value parameter is required"), nil
	}

	by, err := byFromString(stringParam(params, "by", "name"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d, err := s.driver(stringParam(params, "serial", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	refresh := boolParam(params, "refresh", false)
	if boolParam(params, "all", false) {
		elements, err := d.FindElements(by, value, refresh)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return yamlResult(elements)
	}

	el, err := d.FindElement(by, value, refresh)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(el)
}

func (s *mcpServer) handleHierarchy(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	d, err := s.driver(stringParam(params, "serial", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := d.Refresh(""); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(d.Nodes())
}

func (s *mcpServer) handleTap(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	d, err := s.driver(stringParam(params, "serial", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	x := intParam(params, "x", 0)
	y := intParam(params, "y", 0)
	if err := d.Tap(x, y); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("tapped (%d,%d)", x, y)), nil
}

func (s *mcpServer) handleSwipe(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	d, err := s.driver(stringParam(params, "serial", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = d.Swipe(
		intParam(params, "x1", 0), intParam(params, "y1", 0),
		intParam(params, "x2", 0), intParam(params, "y2", 0),
		intParam(params, "duration", 300))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("swiped"), nil
}

func (s *mcpServer) handleText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	text := stringParam(params, "text", "")
	if text == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	d, err := s.driver(stringParam(params, "serial", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := d.InputText(text); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("typed"), nil
}

func (s *mcpServer) handleKeyevent(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	d, err := s.driver(stringParam(params, "serial", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	code := intParam(params, "code", 0)
	if err := d.KeyEvent(code); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("sent keyevent %d", code)), nil
}

func (s *mcpServer) handleScreenshot(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	d, err := s.driver(stringParam(params, "serial", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := d.ScreenshotPNG()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(data),
				MIMEType: "image/png",
			},
		},
	}, nil
}

func (s *mcpServer) handleAppStart(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	component := stringParam(params, "component", "")
	if component == "" {
		return mcp.NewToolResultError("component parameter is required"), nil
	}

	d, err := s.driver(stringParam(params, "serial", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := d.StartComponent(component); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("started " + component), nil
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.LogFile, cfg.Verbose); err != nil {
		return err
	}

	s := newMCPServer(cfg.ADBPath)
	return s.serve(c.String("transport"), c.Int("port"))
}
