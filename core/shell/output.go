package shell

import (
	"io"

	"github.com/spf13/afero"
)

type flusher interface {
	Flush() error
}

// route delivers the captured stdout and stderr of one command, each stream
// independently: to its redirection target file if one was recorded,
// otherwise to the shell's own stream.
func (s *Shell) route(stdout, stderr []byte, redir Redirections) {
	s.routeStream(stdout, redir.Stdout, s.stdout)
	s.routeStream(stderr, redir.Stderr, s.stderr)
}

func (s *Shell) routeStream(data []byte, target string, own io.Writer) {
	if target != "" {
		if err := afero.WriteFile(s.fs, target, data, 0644); err != nil {
			io.WriteString(s.stderr, err.Error()+"\n")
			return
		}
		s.tracef("wrote %q to file %q", data, target)
		return
	}

	if len(data) == 0 {
		return
	}

	own.Write(data)

	// Flush so prompts and output interleave correctly on a terminal.
	if f, ok := own.(flusher); ok {
		f.Flush()
	}
}
