package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// CommandRunner is the interface for running commands.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, dir string, stdin io.Reader) (stdout, stderr []byte, err error)
}

// ExecCommandRunner uses os/exec.
type ExecCommandRunner struct{}

// Run runs a command to completion.
func (ExecCommandRunner) Run(ctx context.Context, name string, args []string, dir string, stdin io.Reader) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = stdin

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// Executor runs one external program with a fixed timeout.
type Executor struct {
	runner     CommandRunner
	binaryPath string
	workDir    string
	timeout    time.Duration
}

// NewExecutor creates an executor. The binary is looked up in PATH unless it
// contains a path separator.
func NewExecutor(binaryPath, workDir string, timeout time.Duration) (*Executor, error) {
	resolved, err := exec.LookPath(binaryPath)
	if err != nil {
		return nil, fmt.Errorf("binary not found: %w", err)
	}

	return NewExecutorWithRunner(resolved, workDir, timeout, ExecCommandRunner{}), nil
}

// NewExecutorWithRunner creates an executor with a custom runner.
func NewExecutorWithRunner(binaryPath, workDir string, timeout time.Duration, runner CommandRunner) *Executor {
	return &Executor{
		binaryPath: binaryPath,
		workDir:    workDir,
		timeout:    timeout,
		runner:     runner,
	}
}

// Execute runs the command and returns its output. A non-zero exit status is
// reported together with whatever the program wrote to stderr.
func (e *Executor) Execute(ctx context.Context, args []string, stdin io.Reader) ([]byte, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	stdout, stderr, err := e.runner.Run(ctx, e.binaryPath, args, e.workDir, stdin)
	if err != nil {
		if len(stderr) > 0 {
			return nil, fmt.Errorf("executor: %s: %w\nstderr: %s", e.binaryPath, err, bytes.TrimSpace(stderr))
		}
		return nil, fmt.Errorf("executor: %s: %w", e.binaryPath, err)
	}

	return stdout, nil
}
