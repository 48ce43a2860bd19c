package feedback

// Command-line flags understood by the collaborator.
const (
	FlagFeedbackType        = "--feedback_type"
	FlagMessage             = "--message"
	FlagSkillName           = "--skill_name"
	FlagConversationContext = "--conversation_context"
)

// Args returns the collaborator arguments encoding r. Optional fields are
// omitted when empty so the collaborator can auto-detect them.
func (r Request) Args() []string {
	args := []string{
		FlagFeedbackType, string(r.Type),
		FlagMessage, r.Message,
	}
	if r.SkillName != "" {
		args = append(args, FlagSkillName, r.SkillName)
	}
	if r.ConversationContext != "" {
		args = append(args, FlagConversationContext, r.ConversationContext)
	}
	return args
}
