package mcp

import (
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Pipeline handles uploads, questions and session clearing.
	Pipeline driving.PipelineService

	// Session manages session lifecycle.
	Session driving.SessionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	// Session is optional; the session resource degrades gracefully.
	return nil
}
