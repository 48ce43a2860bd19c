// Package exec runs the feedback collaborator as a child process.
package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	osexec "os/exec"
	"syscall"
	"time"
)

// DefaultMaxOutput is the number of bytes retained per output stream.
const DefaultMaxOutput = 1 << 20

// Command describes a single process invocation.
type Command struct {
	Path string
	Args []string
	// Dir is the working directory; empty inherits the current one.
	Dir string
	// Env entries ("KEY=value") are appended to the inherited environment.
	Env []string
	// MaxOutput bounds the bytes retained per stream; zero retains everything.
	MaxOutput int
}

// Result is a finished process run.
type Result struct {
	PID      int
	ExitCode int
	Stdout   *OutputCollector
	Stderr   *OutputCollector
	Duration time.Duration
}

// Run starts c and blocks until it exits and both output streams are drained.
// The process runs in its own process group; when ctx is done the whole group
// is killed and Run returns the partial Result together with ctx.Err().
// A non-zero exit status is not an error: check Result.ExitCode.
func Run(ctx context.Context, c Command) (*Result, error) {
	cmd := osexec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", c.Path, err)
	}

	res := &Result{
		PID:    cmd.Process.Pid,
		Stdout: NewOutputCollector(c.MaxOutput),
		Stderr: NewOutputCollector(c.MaxOutput),
	}
	defer res.Stdout.Close()
	defer res.Stderr.Close()

	stdoutDone := make(chan struct{})
	stderrDone := make(chan struct{})
	go func() { _, _ = io.Copy(res.Stdout, stdoutPipe); close(stdoutDone) }()
	go func() { _, _ = io.Copy(res.Stderr, stderrPipe); close(stderrDone) }()

	<-stdoutDone
	<-stderrDone
	waitErr := cmd.Wait()
	res.Duration = time.Since(start)

	if waitErr != nil {
		var exitErr *osexec.ExitError
		isRealExit := errors.As(waitErr, &exitErr) && exitErr.ExitCode() >= 0
		if !isRealExit && ctx.Err() != nil {
			res.ExitCode = -1
			return res, ctx.Err()
		}
		if exitErr != nil {
			res.ExitCode = exitErr.ExitCode()
		} else {
			return res, fmt.Errorf("wait: %w", waitErr)
		}
	}
	return res, nil
}

// lineCount returns the number of lines written to c, counting an
// unterminated final line.
func lineCount(c *OutputCollector) int {
	n := c.TotalNewlines()
	if b := c.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		n++
	}
	return n
}
