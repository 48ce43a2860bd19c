package feedback

import (
	"context"
	"encoding/json"
	"errors"
)

// Result glyphs prefixed to tool call text.
const (
	SuccessGlyph = "✓"
	FailureGlyph = "✗"
)

// Handler is the call boundary of the tool: it validates a call, delegates it
// to the Submitter and maps the result to a ToolResult.
type Handler struct {
	Submitter Submitter
}

// NewHandler creates a Handler that submits through s.
func NewHandler(s Submitter) *Handler {
	return &Handler{Submitter: s}
}

// Call handles one tool call. Unknown tool names are returned as an error and
// never reach the Submitter. Validation and collaborator failures are reported
// as an IsError result.
func (h *Handler) Call(ctx context.Context, name string, args json.RawMessage) (*ToolResult, error) {
	req, err := ParseRequest(name, args)
	if errors.Is(err, ErrUnknownTool) {
		return nil, err
	}
	if err != nil {
		return FailureResult(err), nil
	}

	outcome, err := h.Submitter.Submit(ctx, req)
	if err != nil {
		return FailureResult(err), nil
	}
	return SuccessResult(outcome), nil
}

// SuccessResult formats an Outcome for the agent host.
func SuccessResult(o *Outcome) *ToolResult {
	return &ToolResult{
		Text: SuccessGlyph + " Thank you for your feedback!\n\n" + o.Message,
	}
}

// FailureResult formats an error for the agent host. Collaborator failures
// are described as failed submissions.
func FailureResult(err error) *ToolResult {
	desc := err.Error()
	if errors.Is(err, ErrExecution) {
		desc = "Failed to submit feedback: " + desc
	}
	return &ToolResult{
		Text:    FailureGlyph + " Error submitting feedback: " + desc,
		IsError: true,
	}
}
