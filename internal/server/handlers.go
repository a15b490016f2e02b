package server

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/sobel-edge-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_sobel").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("tool failed", zap.String("tool", params.Name), zap.Error(err))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.log.Debug("tool completed", zap.String("tool", params.Name), zap.Duration("elapsed", time.Since(start)))

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

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sobel":
		return s.handleImageSobel(args)
	case "image_export":
		return s.handleImageExport(args)
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Edge Detection Handlers ===

type imageSobelArgs struct {
	Path          string          `json:"path"`
	KernelSize    int             `json:"kernel_size"`
	OutputFormat  string          `json:"output_format"`
	Scale         float64         `json:"scale"`
	BlurRadius    float64         `json:"blur_radius"`
	Region        *imaging.Region `json:"region,omitempty"`
	Colormap      string          `json:"colormap"`
	OutputKind    string          `json:"output_kind"`
	OutputPath    string          `json:"output_path"`
	EdgeThreshold *int            `json:"edge_threshold"`
}

func (s *Server) handleImageSobel(args json.RawMessage) (interface{}, error) {
	var a imageSobelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.KernelSize == 0 {
		a.KernelSize = s.defaults.KernelSize
	}
	if a.OutputFormat == "" {
		a.OutputFormat = s.defaults.OutputFormat
	}
	if a.Scale == 0 {
		a.Scale = s.defaults.Scale
	}
	if a.EdgeThreshold == nil {
		threshold := s.defaults.EdgeThreshold
		a.EdgeThreshold = &threshold
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	s.log.Debug("sobel",
		zap.String("path", a.Path),
		zap.Int("kernel_size", a.KernelSize),
		zap.String("output_format", a.OutputFormat),
		zap.Float64("scale", a.Scale))

	return imaging.SobelEdges(img, imaging.SobelOptions{
		KernelSize:    a.KernelSize,
		Format:        a.OutputFormat,
		Scale:         a.Scale,
		BlurRadius:    a.BlurRadius,
		Region:        a.Region,
		Colormap:      a.Colormap,
		OutputKind:    a.OutputKind,
		OutputPath:    a.OutputPath,
		EdgeThreshold: a.EdgeThreshold,
	})
}

type imageExportArgs struct {
	Path       string          `json:"path"`
	OutputPath string          `json:"output_path"`
	Region     *imaging.Region `json:"region,omitempty"`
}

func (s *Server) handleImageExport(args json.RawMessage) (interface{}, error) {
	var a imageExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		return nil, fmt.Errorf("output_path is required")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ExportImage(img, a.Region, a.OutputPath)
}
