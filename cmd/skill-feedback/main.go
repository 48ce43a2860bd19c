// Command skill-feedback serves the submit_skill_feedback tool over MCP stdio.
//
// Usage:
//
//	skill-feedback [flags] [serve]
//	skill-feedback [flags] submit -feedback_type bug -message "..." [-skill_name name] [-conversation_context text]
//	skill-feedback schema
//	skill-feedback version
//
// Flags:
//
//	-config string      Path to YAML config file (env SKILL_FEEDBACK_CONFIG)
//	-script string      Collaborator script (env SKILL_FEEDBACK_SCRIPT, default ../src/submit_feedback.py next to the binary)
//	-python string      Interpreter for the script, empty to run it directly (env SKILL_FEEDBACK_PYTHON)
//	-timeout duration   Collaborator time limit, 0 for none
//	-log-level string   debug, info, warn or error (env SKILL_FEEDBACK_LOG_LEVEL)
//	-log-format string  json or console
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fwojciec/feedback"
	fbexec "github.com/fwojciec/feedback/exec"
	"github.com/fwojciec/feedback/mcp"
	fbyaml "github.com/fwojciec/feedback/yaml"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// errSubmitFailed signals a reported submit failure; the result is already
// printed.
var errSubmitFailed = errors.New("submit failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		getenv:    os.Getenv,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		transport: &sdk.StdioTransport{},
	}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, errSubmitFailed) {
			fmt.Fprintf(os.Stderr, "skill-feedback: %v\n", err)
		}
		os.Exit(1)
	}
}

type app struct {
	getenv    func(string) string
	stdout    io.Writer
	stderr    io.Writer
	transport sdk.Transport
}

func (a *app) run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("skill-feedback", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var (
		configPath = fs.String("config", "", "Path to YAML config file")
		script     = fs.String("script", "", "Collaborator script")
		python     = fs.String("python", "", "Interpreter for the script, empty to run it directly")
		timeout    = fs.Duration("timeout", 0, "Collaborator time limit, 0 for none")
		logLevel   = fs.String("log-level", "", "debug, info, warn or error")
		logFormat  = fs.String("log-format", "", "json or console")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := feedback.DefaultConfig()
	cfg.Script = defaultScript()
	if path := firstNonEmpty(*configPath, a.getenv("SKILL_FEEDBACK_CONFIG")); path != "" {
		var err error
		if cfg, err = fbyaml.Load(path, cfg); err != nil {
			return err
		}
	}
	setFromEnv(&cfg.Script, a.getenv("SKILL_FEEDBACK_SCRIPT"))
	setFromEnv(&cfg.Interpreter, a.getenv("SKILL_FEEDBACK_PYTHON"))
	setFromEnv(&cfg.LogLevel, a.getenv("SKILL_FEEDBACK_LOG_LEVEL"))
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "script":
			cfg.Script = *script
		case "python":
			cfg.Interpreter = *python
		case "timeout":
			cfg.Timeout = *timeout
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		}
	})

	cmd := "serve"
	if fs.NArg() > 0 {
		cmd = fs.Arg(0)
	}
	switch cmd {
	case "version":
		fmt.Fprintf(a.stdout, "%s %s\n", cfg.ServerName, cfg.ServerVersion)
		return nil
	case "schema":
		return writeSchema(a.stdout)
	case "serve", "submit":
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := newLogger(a.stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	handler := feedback.NewHandler(fbexec.NewSubmitter(cfg, log))

	if cmd == "submit" {
		return a.submit(ctx, handler, fs.Args()[1:])
	}
	return a.serve(ctx, cfg, handler, log)
}

func (a *app) serve(ctx context.Context, cfg feedback.Config, h *feedback.Handler, log zerolog.Logger) error {
	srv := mcp.NewServer(cfg, h, log)
	log.Info().
		Str("script", cfg.Script).
		Str("interpreter", cfg.Interpreter).
		Dur("timeout", cfg.Timeout).
		Msg("SAAI Skill Feedback MCP Server running on stdio")

	err := srv.Run(ctx, a.transport)
	if err != nil && ctx.Err() == nil && !errors.Is(err, io.EOF) {
		log.Error().Err(err).Msg("server stopped")
		return fmt.Errorf("serve: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func (a *app) submit(ctx context.Context, h *feedback.Handler, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.String("feedback_type", "", "Type of feedback: bug, enhancement, new_skill")
	fs.String("message", "", "Feedback message")
	fs.String("skill_name", "", "Name of the skill being reported")
	fs.String("conversation_context", "", "Relevant conversation excerpt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only flags given on the command line become arguments, so missing
	// required fields are reported by the validator.
	payload := make(map[string]string)
	fs.Visit(func(f *flag.Flag) { payload[f.Name] = f.Value.String() })
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	res, err := h.Call(ctx, feedback.ToolName, raw)
	if err != nil {
		return err
	}
	printResult(a.stdout, res, feedback.DefaultTheme())
	if res.IsError {
		return errSubmitFailed
	}
	return nil
}

func writeSchema(w io.Writer) error {
	tool := feedback.SubmitFeedbackTool()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(map[string]any{
		"name":        tool.Name,
		"title":       tool.Title,
		"description": tool.Description,
		"inputSchema": tool.InputSchema,
	})
}

// newLogger returns a leveled logger writing to w. Stdout carries the
// protocol, so w is stderr in production.
func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	out := w
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// defaultScript mirrors the source layout: the collaborator lives in src/
// next to the directory holding the binary.
func defaultScript() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join("src", "submit_feedback.py")
	}
	return filepath.Join(filepath.Dir(exe), "..", "src", "submit_feedback.py")
}

func setFromEnv(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
