// Package feedback defines the domain types for submitting feedback about
// agent skills: the validated request, the result of running the external
// collaborator and the outcome parsed from its output.
//
// Subpackages provide the implementations: exec runs the collaborator process,
// mcp exposes the tool over the Model Context Protocol and yaml loads
// configuration files.
package feedback

import "context"

// Type is the kind of feedback being submitted.
type Type string

const (
	TypeBug         Type = "bug"
	TypeEnhancement Type = "enhancement"
	TypeNewSkill    Type = "new_skill"
)

// Types returns all valid feedback types in schema order.
func Types() []Type {
	return []Type{TypeBug, TypeEnhancement, TypeNewSkill}
}

// Valid reports whether t is one of the known feedback types.
func (t Type) Valid() bool {
	switch t {
	case TypeBug, TypeEnhancement, TypeNewSkill:
		return true
	}
	return false
}

// Request is a validated feedback submission. Empty optional fields are
// treated as absent and left for the collaborator to fill in.
type Request struct {
	Type                Type
	Message             string
	SkillName           string
	ConversationContext string
}

// ExecutionResult is the raw result of running the collaborator process.
type ExecutionResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Outcome is the structured result of a successful submission. TicketNumber
// and TicketLink fall back to defaults when the collaborator output could not
// be parsed; this is still a success.
type Outcome struct {
	Success      bool
	TicketNumber string
	TicketLink   string
	Message      string
	RawOutput    string
}

// Submitter delegates a validated request to the feedback collaborator.
// Submit returns *ExecutionError or *TimeoutError for collaborator failures.
type Submitter interface {
	Submit(ctx context.Context, req Request) (*Outcome, error)
}
