package tui

import (
	"errors"

	"github.com/custodia-labs/juribot-cli/internal/core/ports/driving"
)

// Ports bundles the driving ports the TUI needs.
type Ports struct {
	// Pipeline answers questions against a session.
	Pipeline driving.PipelineService

	// Session manages session lifecycle.
	Session driving.SessionService
}

// Validate checks that required ports are present.
func (p *Ports) Validate() error {
	if p == nil {
		return errors.New("ports is nil")
	}
	if p.Pipeline == nil {
		return errors.New("pipeline service is required")
	}
	if p.Session == nil {
		return errors.New("session service is required")
	}
	return nil
}
