package exec

import (
	"context"
	"errors"
	"sort"

	"github.com/fwojciec/feedback"
	"github.com/rs/zerolog"
)

// Compile-time interface check.
var _ feedback.Submitter = (*Submitter)(nil)

// Submitter submits feedback by running the collaborator script once per call.
type Submitter struct {
	config    feedback.Config
	maxOutput int
	log       zerolog.Logger
}

// NewSubmitter creates a Submitter for the collaborator described by cfg.
func NewSubmitter(cfg feedback.Config, log zerolog.Logger) *Submitter {
	return &Submitter{
		config:    cfg,
		maxOutput: DefaultMaxOutput,
		log:       log.With().Str("component", "collaborator").Logger(),
	}
}

// Submit runs the collaborator for req and parses its output.
//
// The run is detached from ctx cancellation: once started, the process runs
// until it exits or the configured timeout expires.
func (s *Submitter) Submit(ctx context.Context, req feedback.Request) (*feedback.Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runCtx := context.WithoutCancel(ctx)
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, s.config.Timeout)
		defer cancel()
	}

	argv := s.config.Command(req)
	log := s.log.With().
		Str("feedback_type", string(req.Type)).
		Str("skill_name", req.SkillName).
		Logger()
	log.Debug().Str("path", argv[0]).Int("argc", len(argv)).Msg("starting collaborator")

	res, err := Run(runCtx, Command{
		Path:      argv[0],
		Args:      argv[1:],
		Dir:       s.config.Dir,
		Env:       envList(s.config.Env),
		MaxOutput: s.maxOutput,
	})
	if errors.Is(err, context.DeadlineExceeded) {
		log.Warn().Dur("timeout", s.config.Timeout).Msg("collaborator timed out")
		return nil, &feedback.TimeoutError{Timeout: s.config.Timeout}
	}
	if err != nil {
		log.Error().Err(err).Msg("collaborator failed to run")
		return nil, &feedback.ExecutionError{ExitCode: -1, Err: err}
	}

	log.Info().
		Int("pid", res.PID).
		Int("exit_code", res.ExitCode).
		Dur("duration", res.Duration).
		Int64("stdout_bytes", res.Stdout.TotalBytes()).
		Int64("stderr_bytes", res.Stderr.TotalBytes()).
		Msg("collaborator exited")

	outcome, err := feedback.OutcomeParser{Clean: StripANSI}.Parse(feedback.ExecutionResult{
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout.String(),
		Stderr:   res.Stderr.String(),
	})
	var execErr *feedback.ExecutionError
	if errors.As(err, &execErr) {
		stream := errorStream(res)
		execErr.Message = truncateMessage(stream.String(), lineCount(stream))
		return nil, execErr
	}
	return outcome, err
}

// errorStream returns the stream quoted by a failed run: stderr when anything
// was written to it, stdout otherwise.
func errorStream(res *Result) *OutputCollector {
	if res.Stderr.TotalBytes() > 0 {
		return res.Stderr
	}
	return res.Stdout
}

// envList converts env to sorted KEY=value entries.
func envList(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
