package shell

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
)

// DefaultPrompt is written before each read when no prompt is configured.
const DefaultPrompt = "$ "

var traceColor = color.New(color.FgYellow)

// Shell reads lines of input, interprets each as a command with arguments
// and runs it. One command runs at a time; the loop blocks until it
// finishes.
type Shell struct {
	reader LineReader
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	fs     afero.Fs
	env    Environ
	runner Runner

	prompt string
	debug  bool

	exiting  bool
	exitCode int

	// Per-command capture buffers, replaced fresh on every cycle and
	// discarded once output has been routed.
	out    io.Writer
	errOut io.Writer
}

// Option configures a Shell.
type Option func(*Shell)

// WithFS sets the filesystem used for PATH scans and redirection targets.
func WithFS(fsys afero.Fs) Option {
	return func(s *Shell) { s.fs = fsys }
}

// WithEnviron sets the environment variable source.
func WithEnviron(env Environ) Option {
	return func(s *Shell) { s.env = env }
}

// WithRunner sets the external program runner.
func WithRunner(r Runner) Option {
	return func(s *Shell) { s.runner = r }
}

// WithStdin sets the reader external programs inherit as standard input.
func WithStdin(r io.Reader) Option {
	return func(s *Shell) { s.stdin = r }
}

// WithPrompt sets the prompt written before each read.
func WithPrompt(prompt string) Option {
	return func(s *Shell) { s.prompt = prompt }
}

// WithDebug enables tracing of tokenized arguments and file writes.
func WithDebug(on bool) Option {
	return func(s *Shell) { s.debug = on }
}

// New creates a Shell reading commands from reader and writing uncaptured
// output to stdout and stderr.
func New(reader LineReader, stdout, stderr io.Writer, opts ...Option) *Shell {
	s := &Shell{
		reader: reader,
		stdin:  os.Stdin,
		stdout: stdout,
		stderr: stderr,
		fs:     afero.NewOsFs(),
		env:    OSEnviron(),
		runner: NewRunner(),
		prompt: DefaultPrompt,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes the read-parse-dispatch-output loop until the input ends or
// an exit builtin runs, returning the shell's exit status.
func (s *Shell) Run() int {
	for !s.exiting {
		s.reader.SetPrompt(s.prompt)
		line, err := s.reader.Readline()

		switch {
		case err == io.EOF:
			return s.exitCode

		case err != nil:
			log.Printf("error reading line: %v", err)
			continue

		case len(line) == 0:
			continue

		default:
			s.eval(line)
		}
	}

	return s.exitCode
}

func (s *Shell) requestExit(code int) {
	s.exiting = true
	s.exitCode = code
}

// eval runs one command cycle: tokenize, extract redirections, dispatch and
// route the captured output.
func (s *Shell) eval(line string) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return
	}

	s.tracef("tokenised arguments = %q", tokens[1:])

	args, redir, err := ExtractRedirects(tokens[1:])
	if err != nil {
		fmt.Fprintf(s.stderr, "%s: %v\n", tokens[0], err)
		return
	}

	// Targets are truncated before dispatch: even a command that fails to
	// resolve clears its redirection files.
	if err := TouchTargets(s.fs, redir); err != nil {
		fmt.Fprintf(s.stderr, "%s: %v\n", tokens[0], err)
		return
	}

	var out, errOut bytes.Buffer
	s.out, s.errOut = &out, &errOut

	argv := append([]string{tokens[0]}, args...)
	s.dispatch(tokens[0], argv)

	s.out, s.errOut = nil, nil
	s.route(out.Bytes(), errOut.Bytes(), redir)
}

// dispatch routes a command to exactly one of: the debug toggle, a builtin
// handler, or external execution.
func (s *Shell) dispatch(name string, argv []string) {
	if name == "debug_mode" {
		s.debugMode(argv)
		return
	}

	if builtin, ok := AllBuiltins[name]; ok {
		builtin.Main(s, argv)
		return
	}

	execPath, err := LookPath(s.fs, s.env, name)
	if err != nil {
		fmt.Fprintf(s.errOut, "%s: command not found\n", name)
		return
	}

	res, err := s.runner.Run(execPath, argv, s.stdin)
	if err != nil {
		fmt.Fprintf(s.errOut, "%s: %v\n", name, err)
		return
	}

	s.out.Write(res.Stdout)
	s.errOut.Write(res.Stderr)
}

// debugMode toggles tracing. It is handled ahead of builtin dispatch and
// deliberately not registered in AllBuiltins, so `type debug_mode` reports
// not found.
func (s *Shell) debugMode(argv []string) {
	if len(argv) > 1 {
		switch strings.ToLower(argv[1]) {
		case "on", "true", "1":
			s.debug = true
		case "off", "false", "0":
			s.debug = false
		}
	}
	fmt.Fprintf(s.out, "Debug mode: %v\n", s.debug)
}

// tracef writes a debug trace line to the shell's own stdout, bypassing
// capture and redirection.
func (s *Shell) tracef(format string, args ...interface{}) {
	if !s.debug {
		return
	}
	traceColor.Fprintf(s.stdout, format+"\n", args...)
}
