// Package mcp provides an MCP (Model Context Protocol) server adapter
// for JuriBot. It lets AI assistants upload documents into sessions and
// ask questions against them.
package mcp

import "errors"

// ErrMissingPipelineService is returned when the pipeline service is not provided.
var ErrMissingPipelineService = errors.New("mcp: pipeline service is required")
