package feedback

// ToolName is the identifier of the single tool this server exposes.
const ToolName = "submit_skill_feedback"

// Tool describes a tool to the agent host.
type Tool struct {
	Name        string
	Title       string
	Description string
	InputSchema map[string]any
}

// ToolResult is the outcome of a tool call as returned to the agent host.
// IsError marks failures reported to the caller rather than raised.
type ToolResult struct {
	Text    string
	IsError bool
}

const toolDescription = `Submit feedback about any MCP skill you use with Claude.

Use this tool when the user:
- Reports a bug or issue with a skill
- Suggests an enhancement or improvement
- Requests a completely new skill

The tool will:
- Auto-detect which skill from recent conversation (if not specified)
- Capture relevant conversation context
- Create a ServiceNow SBO with all details
- Assign to the skill maintainer

Types of feedback:
- bug: Something is broken, errors, unexpected behavior
- enhancement: Improvements to existing features
- new_skill: Request for a new MCP skill that doesn't exist yet`

// SubmitFeedbackTool returns the definition of the submit_skill_feedback tool.
func SubmitFeedbackTool() Tool {
	types := make([]string, 0, len(Types()))
	for _, t := range Types() {
		types = append(types, string(t))
	}
	return Tool{
		Name:        ToolName,
		Title:       "Submit Skill Feedback",
		Description: toolDescription,
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"feedback_type": map[string]any{
					"type":        "string",
					"enum":        types,
					"description": "Type of feedback: bug (something broken), enhancement (improve existing), new_skill (request new capability)",
				},
				"message": map[string]any{
					"type":        "string",
					"description": "Detailed feedback message with context from the conversation. For bugs: include error messages. For enhancements: describe current vs desired behavior. For new skills: explain the use case.",
				},
				"skill_name": map[string]any{
					"type":        "string",
					"description": "Name of the skill (e.g., 'create-sbo-request'). Auto-detected from conversation if not provided.",
				},
				"conversation_context": map[string]any{
					"type":        "string",
					"description": "Relevant conversation excerpt showing the issue (3-5 messages). Include tool calls, parameters, and responses if applicable.",
				},
			},
			"required": []string{"feedback_type", "message"},
		},
	}
}
