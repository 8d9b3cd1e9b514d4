// Package server implements the MCP (Model Context Protocol) server for the
// print grid tools.
//
// This package provides a JSON-RPC 2.0 server that lets MCP clients lay out
// and render print sheets: a source image is resampled to a physical tile
// size and repeated in a centered grid on a sheet at a fixed resolution.
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
// Source image information:
//   - image_load: Load image and get metadata, including the default tile size
//   - image_dimensions: Get width and height
//
// Grid operations:
//   - grid_plan: Compute tile counts and margins without rendering
//   - grid_compose: Render the sheet and return it as base64 JPEG
//
// Size arguments are inches and may be sent as JSON numbers or as decimal
// text. Blank tile sizes fall back to the image's native size at 600 DPI;
// blank sheet sizes fall back to the configured sheet.
//
// # Image Caching
//
// Decoded images are cached by path and reused across tool calls for the
// lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string as data. The message names the category:
//   - "Invalid number": a size was not a decimal number
//   - "Invalid dimension": a size was zero, negative or rounded to zero pixels
//   - "Unsupported image format": the file is not a decodable image
//   - "Tool execution failed": anything else, such as a missing file
//
// # Usage
//
//	srv := server.New(cfg, logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal().Err(err).Msg("server failed")
//	}
package server
