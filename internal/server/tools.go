package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source image (PNG, JPEG, GIF, WebP, BMP or TIFF)",
	}
}

// inchesProperty accepts either a JSON number or decimal text so clients can
// forward form input without converting it.
func inchesProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        []string{"string", "number"},
		"description": description,
	}
}

func gridProperties() map[string]interface{} {
	return map[string]interface{}{
		"path":         pathProperty(),
		"tile_width":   inchesProperty("Printed width of each tile in inches. Omit tile_width or tile_height to print the image at its native size (pixels / 600)."),
		"tile_height":  inchesProperty("Printed height of each tile in inches. The image is stretched to exactly this size; aspect ratio is not preserved."),
		"sheet_width":  inchesProperty("Sheet width in inches. Defaults to the configured sheet width."),
		"sheet_height": inchesProperty("Sheet height in inches. Defaults to the configured sheet height."),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	composeProps := gridProperties()
	composeProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional path to also write the JPEG to. The encoded image is returned either way.",
	}

	return []Tool{
		// Source image information
		{
			Name:        "image_load",
			Description: "Load an image file and return its pixel dimensions, format, and the tile size in inches it would print at by default.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Grid operations
		{
			Name:        "grid_plan",
			Description: "Compute how many copies of an image fit on a print sheet and where they go, without rendering. Returns tile and sheet sizes in pixels, the column and row counts, and the centering margins.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": gridProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "grid_compose",
			Description: "Tile copies of an image across a print sheet filled with the configured background (white by default) at the configured DPI (600 by default), centered, and return the sheet as a base64-encoded JPEG named output.jpg. A tile larger than the sheet yields a blank sheet.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": composeProps,
				"required":   []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
