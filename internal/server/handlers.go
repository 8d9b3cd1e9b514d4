package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ironsheep/print-grid-mcp/internal/grid"
	"github.com/ironsheep/print-grid-mcp/internal/imaging"
	"github.com/ironsheep/print-grid-mcp/internal/sheet"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "grid_compose").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// and a message naming the error category.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Debug().Str("tool", params.Name).Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, toolErrorMessage(err), err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// toolErrorMessage names the category of a tool failure.
func toolErrorMessage(err error) string {
	var parseErr *grid.ParseError
	var dimErr *grid.InvalidDimensionError

	switch {
	case errors.As(err, &parseErr):
		return "Invalid number"
	case errors.As(err, &dimErr):
		return "Invalid dimension"
	case imaging.IsUnsupportedFormat(err):
		return "Unsupported image format"
	default:
		return "Tool execution failed"
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "grid_plan":
		return s.handleGridPlan(args)
	case "grid_compose":
		return s.handleGridCompose(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// sizeText is a size field that arrives as either a JSON string or a JSON
// number. Numbers keep their literal text so both forms parse the same way.
type sizeText string

func (t *sizeText) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		*t = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = sizeText(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("size must be a string or a number, got %s", b)
	}
	*t = sizeText(n.String())
	return nil
}

// === Source Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (a imageLoadArgs) validate() error {
	if strings.TrimSpace(a.Path) == "" {
		return errors.New("path is required")
	}
	return nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Grid Handlers ===

type gridArgs struct {
	Path        string   `json:"path"`
	TileWidth   sizeText `json:"tile_width"`
	TileHeight  sizeText `json:"tile_height"`
	SheetWidth  sizeText `json:"sheet_width"`
	SheetHeight sizeText `json:"sheet_height"`
	OutputPath  string   `json:"output_path"`
}

func (a gridArgs) request() sheet.Request {
	return sheet.Request{
		TileWidth:   string(a.TileWidth),
		TileHeight:  string(a.TileHeight),
		SheetWidth:  string(a.SheetWidth),
		SheetHeight: string(a.SheetHeight),
	}
}

// composeResult is the grid_compose response. Image holds the base64 JPEG.
type composeResult struct {
	*sheet.Result
	Filename    string `json:"filename"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int    `json:"size_bytes"`
	Image       string `json:"image"`
	WrittenPath string `json:"written_path,omitempty"`
}

func (s *Server) handleGridPlan(args json.RawMessage) (interface{}, error) {
	var a gridArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := (imageLoadArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.renderer.Plan(img, a.request())
}

func (s *Server) handleGridCompose(args json.RawMessage) (interface{}, error) {
	var a gridArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := (imageLoadArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	res, err := s.renderer.Render(img, a.request())
	if err != nil {
		return nil, err
	}

	out := &composeResult{
		Result:    res,
		Filename:  res.Output.Filename,
		MimeType:  res.Output.MimeType,
		SizeBytes: len(res.Output.Data),
		Image:     res.Output.Base64(),
	}

	if a.OutputPath != "" {
		if err := os.WriteFile(a.OutputPath, res.Output.Data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write sheet: %w", err)
		}
		out.WrittenPath = a.OutputPath
		// A cached decode of this path is now stale.
		s.cache.Evict(a.OutputPath)
		s.log.Info().Str("path", a.OutputPath).Msg("wrote sheet")
	}

	return out, nil
}
