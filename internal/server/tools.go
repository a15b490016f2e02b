package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionSchema describes an optional rectangular region argument.
func regionSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer", "description": "Left edge X (inclusive)"},
			"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y (inclusive)"},
			"x2": map[string]interface{}{"type": "integer", "description": "Right edge X (exclusive)"},
			"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y (exclusive)"},
		},
		"required":    []string{"x1", "y1", "x2", "y2"},
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
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
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Edge Detection
		{
			Name:        "image_sobel",
			Description: "Run Sobel edge detection and return the edge map as base64-encoded PNG. The image is converted to grayscale by averaging R, G and B; pixels outside the image count as black. Brighter output means a stronger gradient (or, for direction, a larger angle).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"kernel_size": map[string]interface{}{
						"type":        "integer",
						"enum":        []int{3, 5},
						"description": "Sobel kernel size (default 3)",
						"default":     3,
					},
					"output_format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"magnitude", "x", "y", "direction"},
						"description": "Gradient encoding: magnitude sqrt(gx²+gy²), |gx|, |gy|, or direction atan2(gy,gx) mapped to 0-255 (default magnitude)",
						"default":     "magnitude",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Multiply output intensities by this factor, saturating at 255 (default 1.0)",
						"default":     1.0,
					},
					"blur_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius in pixels applied before detection to suppress noise; the kernel spans ceil(2r+1) pixels (default 0, no blur)",
						"default":     0,
					},
					"region": regionSchema("Optional region to process. If omitted, processes the entire image."),
					"colormap": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"gray", "hue"},
						"description": "Render output as grayscale or as a hue wheel (useful with direction). Default gray",
						"default":     "gray",
					},
					"output_kind": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rgba", "nrgba", "gray"},
						"description": "Pixel format of the encoded PNG (default rgba)",
						"default":     "rgba",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional .png path to also save the edge map to",
					},
					"edge_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Output value at or above which a pixel counts as an edge in the returned stats (default 50)",
						"default":     50,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_export",
			Description: "Save the source image, or a region of it, as a PNG file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Destination .png path",
					},
					"region": regionSchema("Optional region to export. If omitted, exports the entire image."),
				},
				"required": []string{"path", "output_path"},
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
