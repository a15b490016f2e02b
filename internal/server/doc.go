// Package server implements the MCP (Model Context Protocol) server for Sobel
// edge detection.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sobel: Sobel edge map as base64 PNG, optionally saved to disk
//   - image_export: Save the source image (or a region) as PNG
//
// Arguments omitted from image_sobel take the server defaults supplied with
// WithDefaults, which normally come from the config package.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (invalid params) or
//     -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// Every request is logged at debug level and every tool failure at warn level.
package server
