package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for JuriBot resources.
	uriScheme = "juribot://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for session state.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{sessionId}",
		Name:        "session",
		Description: "Documents and conversation turns of a session",
		MIMEType:    "application/json",
	}, s.handleSessionResource)
}

// handleSessionResource returns a session's documents and turns.
func (s *Server) handleSessionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Graceful fallback when no session service is wired
	if s.ports.Session == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "{}",
			}},
		}, nil
	}

	sessionID := strings.TrimPrefix(req.Params.URI, uriScheme+"sessions/")
	if sessionID == "" || sessionID == req.Params.URI {
		return nil, fmt.Errorf("invalid session URI: %s", req.Params.URI)
	}

	session, err := s.ports.Session.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	type turnInfo struct {
		Feature  string `json:"feature"`
		Query    string `json:"query"`
		Response string `json:"response"`
	}
	type sessionInfo struct {
		ID          string     `json:"id"`
		DocumentIDs []string   `json:"document_ids"`
		Turns       []turnInfo `json:"turns"`
	}

	info := sessionInfo{
		ID:          session.ID,
		DocumentIDs: session.DocumentIDs,
	}
	for _, turn := range session.Turns {
		info.Turns = append(info.Turns, turnInfo{
			Feature:  turn.Feature.String(),
			Query:    turn.Query,
			Response: turn.Response,
		})
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
