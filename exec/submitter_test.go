package exec_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/feedback"
	fbexec "github.com/fwojciec/feedback/exec"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript writes a shell collaborator to a temp dir and returns a config
// that runs it with sh.
func writeScript(t *testing.T, body string) feedback.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "submit_feedback.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	cfg := feedback.DefaultConfig()
	cfg.Interpreter = "sh"
	cfg.Script = path
	return cfg
}

func bugReport() feedback.Request {
	return feedback.Request{Type: feedback.TypeBug, Message: "Dashboard lookup failed"}
}

func TestSubmitter(t *testing.T) {
	t.Parallel()

	t.Run("parses ticket and link from output", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `
echo "Submitting feedback: bug"
echo "✓ Feedback submitted successfully: DSRT123456"
echo ""
echo "Link: https://example.org/sbo/123456"`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		out, err := s.Submit(context.Background(), bugReport())
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, "DSRT123456", out.TicketNumber)
		assert.Equal(t, "https://example.org/sbo/123456", out.TicketLink)
		assert.Equal(t, "Feedback submitted successfully: DSRT123456\n\nhttps://example.org/sbo/123456", out.Message)
		assert.Contains(t, out.RawOutput, "Submitting feedback: bug")
	})

	t.Run("parses ticket split across output chunks", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `printf 'successfully: DSRT'; sleep 0.05; printf '77\nLink: https://example.org/77\n'`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		out, err := s.Submit(context.Background(), bugReport())
		require.NoError(t, err)
		assert.Equal(t, "DSRT77", out.TicketNumber)
		assert.Equal(t, "https://example.org/77", out.TicketLink)
	})

	t.Run("succeeds with defaults when output is unparsable", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `echo "all good, nothing to see"`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		out, err := s.Submit(context.Background(), bugReport())
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, "Unknown", out.TicketNumber)
		assert.Empty(t, out.TicketLink)
	})

	t.Run("fails with stderr on non-zero exit", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `printf 'ignored'; printf 'boom' >&2; exit 1`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		_, err := s.Submit(context.Background(), bugReport())
		var execErr *feedback.ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "boom", execErr.Message)
		assert.Equal(t, 1, execErr.ExitCode)
		assert.ErrorIs(t, err, feedback.ErrExecution)
	})

	t.Run("falls back to stdout when stderr is empty", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `printf 'partial output'; exit 1`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		_, err := s.Submit(context.Background(), bugReport())
		var execErr *feedback.ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "partial output", execErr.Message)
	})

	t.Run("reports escape-only stderr instead of stdout", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `printf '\033[0m' >&2; printf 'partial output'; exit 1`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		_, err := s.Submit(context.Background(), bugReport())
		var execErr *feedback.ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "\x1b[0m", execErr.Message)
	})

	t.Run("keeps carriage returns in error text", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `printf 'Traceback line\rboom' >&2; exit 1`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		_, err := s.Submit(context.Background(), bugReport())
		var execErr *feedback.ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "Traceback line\rboom", execErr.Message)
	})

	t.Run("keeps raw stdout and matches ticket through color codes", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `printf '\033[32m✓ Feedback submitted successfully: \033[1mDSRT42\033[0m\r\n'
printf 'Link: \033[4mhttps://example.org/42\033[0m\r\n'`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		out, err := s.Submit(context.Background(), bugReport())
		require.NoError(t, err)
		assert.Equal(t, "DSRT42", out.TicketNumber)
		assert.Equal(t, "https://example.org/42", out.TicketLink)
		assert.Contains(t, out.RawOutput, "\x1b[32m")
		assert.Contains(t, out.RawOutput, "\r\n")
	})

	t.Run("counts lines of the stream it quotes", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `i=0; while [ $i -lt 1000 ]; do echo "out $i"; i=$((i+1)); done
i=0; while [ $i -lt 300 ]; do echo "err $i" >&2; i=$((i+1)); done; exit 1`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		_, err := s.Submit(context.Background(), bugReport())
		var execErr *feedback.ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.True(t, strings.HasPrefix(execErr.Message, "[showing last 200 of 300 lines]\n"))
		assert.Contains(t, execErr.Message, "err 299")
		assert.NotContains(t, execErr.Message, "out ")
	})

	t.Run("does not truncate short stderr beside long stdout", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `i=0; while [ $i -lt 1000 ]; do echo "out $i"; i=$((i+1)); done
printf '\033[0m' >&2; exit 1`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		_, err := s.Submit(context.Background(), bugReport())
		var execErr *feedback.ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "\x1b[0m", execErr.Message)
	})

	t.Run("truncates oversized error output", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `i=0; while [ $i -lt 1000 ]; do echo "error line $i" >&2; i=$((i+1)); done; exit 3`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		_, err := s.Submit(context.Background(), bugReport())
		var execErr *feedback.ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.True(t, strings.HasPrefix(execErr.Message, "[showing last 200 of 1000 lines]"))
		assert.Contains(t, execErr.Message, "error line 999")
		assert.NotContains(t, execErr.Message, "error line 0\n")
	})

	t.Run("passes flags and omits absent optional fields", func(t *testing.T) {
		t.Parallel()
		argsFile := filepath.Join(t.TempDir(), "args")
		cfg := writeScript(t, `for a in "$@"; do printf '%s\n' "$a" >> "$ARGS_FILE"; done`)
		cfg.Env = map[string]string{"ARGS_FILE": argsFile}
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		_, err := s.Submit(context.Background(), feedback.Request{
			Type:      feedback.TypeEnhancement,
			Message:   "multi word message",
			SkillName: "create-sbo-request",
		})
		require.NoError(t, err)

		data, err := os.ReadFile(argsFile)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"--feedback_type", "enhancement",
			"--message", "multi word message",
			"--skill_name", "create-sbo-request",
		}, strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"))
	})

	t.Run("rejects invalid request without running", func(t *testing.T) {
		t.Parallel()
		marker := filepath.Join(t.TempDir(), "ran")
		cfg := writeScript(t, `touch "$MARKER"`)
		cfg.Env = map[string]string{"MARKER": marker}
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		_, err := s.Submit(context.Background(), feedback.Request{Type: "praise", Message: "x"})
		assert.ErrorIs(t, err, feedback.ErrValidation)
		_, statErr := os.Stat(marker)
		assert.True(t, errors.Is(statErr, os.ErrNotExist))
	})

	t.Run("times out with a distinct error", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `sleep 10`)
		cfg.Timeout = 100 * time.Millisecond
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		_, err := s.Submit(context.Background(), bugReport())
		require.ErrorIs(t, err, feedback.ErrTimeout)
		assert.NotErrorIs(t, err, feedback.ErrExecution)
	})

	t.Run("runs to completion after caller cancels", func(t *testing.T) {
		t.Parallel()
		cfg := writeScript(t, `sleep 0.1; echo "successfully: DSRT5"`)
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		out, err := s.Submit(ctx, bugReport())
		require.NoError(t, err)
		assert.Equal(t, "DSRT5", out.TicketNumber)
	})

	t.Run("reports start failure as execution error", func(t *testing.T) {
		t.Parallel()
		cfg := feedback.DefaultConfig()
		cfg.Interpreter = "/nonexistent/python3"
		cfg.Script = "submit_feedback.py"
		s := fbexec.NewSubmitter(cfg, zerolog.Nop())

		_, err := s.Submit(context.Background(), bugReport())
		var execErr *feedback.ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, -1, execErr.ExitCode)
		assert.NotEmpty(t, execErr.Error())
	})
}
