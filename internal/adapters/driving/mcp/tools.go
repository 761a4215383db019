package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

// UploadInput is the input schema for the upload_document tool.
type UploadInput struct {
	SessionID string `json:"session_id" jsonschema:"the session to upload into"`
	Filename  string `json:"filename" jsonschema:"the document filename, extension selects the format (pdf, docx, png, jpg, tiff)"`
	Content   string `json:"content" jsonschema:"the base64-encoded document bytes"`
}

// UploadOutput is the output schema for the upload_document tool.
type UploadOutput struct {
	DocumentID string   `json:"document_id"`
	Status     string   `json:"status"`
	Chunks     int      `json:"chunks"`
	Words      int      `json:"words"`
	KeyPhrases []string `json:"key_phrases,omitempty"`
	Language   string   `json:"language,omitempty"`
	Translated bool     `json:"translated,omitempty"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	SessionID string `json:"session_id" jsonschema:"the session whose documents to answer from"`
	Query     string `json:"query" jsonschema:"the question to answer"`
	Feature   string `json:"feature,omitempty" jsonschema:"chat, caselaw or cost (default chat)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Feature    string       `json:"feature"`
	Text       string       `json:"text"`
	Cases      []CaseOutput `json:"cases,omitempty"`
	Cost       *CostOutput  `json:"cost,omitempty"`
	LastResort bool         `json:"last_resort_context"`
}

// CaseOutput is one parsed case citation.
type CaseOutput struct {
	Title   string `json:"title"`
	Year    string `json:"year,omitempty"`
	Court   string `json:"court,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// CostOutput is the structured cost estimate.
type CostOutput struct {
	BaselineINR float64          `json:"baseline_inr"`
	LineItems   []CostItemOutput `json:"line_items,omitempty"`
}

// CostItemOutput is one labelled cost component.
type CostItemOutput struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// ClearInput is the input schema for the clear_session tool.
type ClearInput struct {
	SessionID string `json:"session_id" jsonschema:"the session to evict"`
}

// ClearOutput is the output schema for the clear_session tool.
type ClearOutput struct {
	Cleared bool `json:"cleared"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_document",
		Description: "Upload a legal document (PDF, DOCX or scan) into a session",
	}, s.handleUpload)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question against a session's documents: chat, case law or cost estimate",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_session",
		Description: "Evict a session and all its documents",
	}, s.handleClear)
}

// handleUpload handles the upload_document tool invocation.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	payload, err := base64.StdEncoding.DecodeString(input.Content)
	if err != nil {
		return nil, UploadOutput{}, fmt.Errorf("decoding content: %w", err)
	}

	status, err := s.ports.Pipeline.Upload(ctx, input.SessionID, input.Filename, payload)
	if err != nil {
		return nil, UploadOutput{}, err
	}

	return nil, UploadOutput{
		DocumentID: status.DocumentID,
		Status:     status.Status.String(),
		Chunks:     status.Chunks,
		Words:      status.Stats.Words,
		KeyPhrases: status.KeyPhrases,
		Language:   status.Language,
		Translated: status.Translated,
	}, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	feature := domain.FeatureChat
	if input.Feature != "" {
		var err error
		feature, err = domain.ParseFeature(input.Feature)
		if err != nil {
			return nil, AskOutput{}, err
		}
	}

	answer, err := s.ports.Pipeline.Ask(ctx, input.SessionID, input.Query, feature)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Feature:    answer.Feature.String(),
		Text:       answer.Text,
		LastResort: answer.LastResortContext,
	}
	for _, c := range answer.Cases {
		output.Cases = append(output.Cases, CaseOutput{
			Title:   c.Title,
			Year:    c.Year,
			Court:   c.Court,
			Summary: c.Summary,
		})
	}
	if answer.Cost != nil {
		cost := &CostOutput{BaselineINR: answer.Cost.BaselineINR}
		for _, item := range answer.Cost.LineItems {
			cost.LineItems = append(cost.LineItems, CostItemOutput{
				Label:  item.Label,
				Amount: item.Amount,
			})
		}
		output.Cost = cost
	}

	return nil, output, nil
}

// handleClear handles the clear_session tool invocation.
func (s *Server) handleClear(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClearInput,
) (*mcp.CallToolResult, ClearOutput, error) {
	if err := s.ports.Pipeline.Clear(ctx, input.SessionID); err != nil {
		return nil, ClearOutput{}, err
	}
	return nil, ClearOutput{Cleared: true}, nil
}
