package shell

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// ErrInvalidRedirect is the error resulting if a redirection operator has no
// file name operand.
var ErrInvalidRedirect = errors.New("invalid redirection")

// Redirections holds the file targets for a single command's output streams.
// An empty path means the stream goes to the shell's own stream.
type Redirections struct {
	Stdout string
	Stderr string
}

// HasStdout reports whether standard output is redirected.
func (r Redirections) HasStdout() bool { return r.Stdout != "" }

// HasStderr reports whether standard error is redirected.
func (r Redirections) HasStderr() bool { return r.Stderr != "" }

func isRedirectOperator(tok string) bool {
	switch tok {
	case ">", "1>", "2>":
		return true
	default:
		return false
	}
}

// ExtractRedirects removes every redirection operator and its file name
// operand from args and records the targets. Operators may appear anywhere
// in the argument list; when an operator repeats, the last occurrence wins.
//
// An operator with no following token fails with ErrInvalidRedirect.
func ExtractRedirects(args []string) ([]string, Redirections, error) {
	var redir Redirections
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		tok := args[i]
		if !isRedirectOperator(tok) {
			out = append(out, tok)
			continue
		}

		if i+1 >= len(args) {
			return nil, Redirections{}, fmt.Errorf("%w: missing file name after %q", ErrInvalidRedirect, tok)
		}

		target := args[i+1]
		i++

		switch tok {
		case ">", "1>":
			redir.Stdout = target
		case "2>":
			redir.Stderr = target
		}
	}

	return out, redir, nil
}

// TouchTargets creates or truncates every redirection target. This happens
// when the command line is parsed, before the command runs, so a command
// that never executes still clears its target files.
func TouchTargets(fsys afero.Fs, redir Redirections) error {
	for _, target := range []string{redir.Stdout, redir.Stderr} {
		if target == "" {
			continue
		}
		fd, err := fsys.Create(target)
		if err != nil {
			return err
		}
		if err := fd.Close(); err != nil {
			return err
		}
	}
	return nil
}
