package feedback_test

import (
	"testing"

	"github.com/fwojciec/feedback"
	"github.com/stretchr/testify/assert"
)

// flagValues maps each collaborator flag in args to its value.
func flagValues(t *testing.T, args []string) map[string]string {
	t.Helper()
	if !assert.Zero(t, len(args)%2, "args must be flag/value pairs: %q", args) {
		return nil
	}
	out := make(map[string]string, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		out[args[i]] = args[i+1]
	}
	return out
}

func TestRequest_Args(t *testing.T) {
	t.Parallel()

	t.Run("mandatory flags come first", func(t *testing.T) {
		t.Parallel()
		r := feedback.Request{Type: feedback.TypeBug, Message: "it broke"}
		assert.Equal(t, []string{"--feedback_type", "bug", "--message", "it broke"}, r.Args())
	})

	t.Run("optional flags follow in order", func(t *testing.T) {
		t.Parallel()
		r := feedback.Request{
			Type:                feedback.TypeEnhancement,
			Message:             "more filters",
			SkillName:           "create-sbo-request",
			ConversationContext: "user: filter by owner",
		}
		assert.Equal(t, []string{
			"--feedback_type", "enhancement",
			"--message", "more filters",
			"--skill_name", "create-sbo-request",
			"--conversation_context", "user: filter by owner",
		}, r.Args())
	})

	t.Run("flag present exactly when field present", func(t *testing.T) {
		t.Parallel()
		for _, skill := range []string{"", "skill"} {
			for _, convo := range []string{"", "context"} {
				r := feedback.Request{Type: feedback.TypeNewSkill, Message: "--message", SkillName: skill, ConversationContext: convo}
				got := flagValues(t, r.Args())

				assert.Equal(t, "new_skill", got[feedback.FlagFeedbackType])
				assert.Equal(t, "--message", got[feedback.FlagMessage])
				v, ok := got[feedback.FlagSkillName]
				assert.Equal(t, skill != "", ok)
				assert.Equal(t, skill, v)
				v, ok = got[feedback.FlagConversationContext]
				assert.Equal(t, convo != "", ok)
				assert.Equal(t, convo, v)
			}
		}
	})
}

func TestConfig_Command(t *testing.T) {
	t.Parallel()

	r := feedback.Request{Type: feedback.TypeBug, Message: "m"}

	t.Run("prefixes interpreter and script", func(t *testing.T) {
		t.Parallel()
		cfg := feedback.DefaultConfig()
		cfg.Script = "/srv/src/submit_feedback.py"
		assert.Equal(t, []string{
			"python3", "/srv/src/submit_feedback.py",
			"--feedback_type", "bug", "--message", "m",
		}, cfg.Command(r))
	})

	t.Run("runs script directly without interpreter", func(t *testing.T) {
		t.Parallel()
		cfg := feedback.Config{Script: "./submit"}
		assert.Equal(t, "./submit", cfg.Command(r)[0])
	})
}
