package shell

import (
	"bytes"
	"errors"
	"io"
	"os/exec"
)

// ExecResult holds the independently captured output streams and exit
// status of one completed external command.
type ExecResult struct {
	Stdout     []byte
	Stderr     []byte
	ExitStatus int
}

// Runner spawns external programs and blocks until they terminate.
type Runner interface {
	Run(path string, argv []string, stdin io.Reader) (*ExecResult, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(path string, argv []string, stdin io.Reader) (*ExecResult, error)

// Run implements Runner.
func (f RunnerFunc) Run(path string, argv []string, stdin io.Reader) (*ExecResult, error) {
	return f(path, argv, stdin)
}

var _ Runner = (RunnerFunc)(nil)

type execRunner struct{}

// NewRunner returns a Runner that spawns real operating system processes.
func NewRunner() Runner {
	return execRunner{}
}

// Run spawns path as a child process. The child inherits the given stdin
// and the shell's working directory; its stdout and stderr are captured as
// two separate buffers, never merged.
//
// A child that runs and exits nonzero is not an error: the status is
// recorded on the result and the shell keeps going.
func (execRunner) Run(path string, argv []string, stdin io.Reader) (*ExecResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stdin:  stdin,
		Stdout: &stdout,
		Stderr: &stderr,
	}

	err := cmd.Run()
	res := &ExecResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitStatus = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
