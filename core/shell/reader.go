package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
)

// LineReader supplies one raw line of input per call, with the trailing
// newline stripped. Readline returns io.EOF when there is no more input.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

type readlineReader struct {
	instance *readline.Instance
}

// NewReadlineReader returns a LineReader with interactive line editing and
// history, for use on a terminal.
func NewReadlineReader(stdin io.ReadCloser, stdout, stderr io.Writer, historyFile string) (LineReader, error) {
	cfg := &readline.Config{
		Stdin:       readline.NewCancelableStdin(stdin),
		Stdout:      stdout,
		Stderr:      stderr,
		HistoryFile: historyFile,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	instance, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &readlineReader{instance: instance}, nil
}

func (r *readlineReader) SetPrompt(prompt string) {
	r.instance.SetPrompt(prompt)
}

func (r *readlineReader) Readline() (string, error) {
	line, err := r.instance.Readline()
	if err == readline.ErrInterrupt {
		// Ctrl-C abandons the current line but not the shell.
		return "", nil
	}
	return line, err
}

func (r *readlineReader) Close() error {
	return r.instance.Close()
}

type bufioReader struct {
	reader *bufio.Reader
	prompt string
	out    io.Writer
}

// NewBufioReader returns a LineReader that reads lines from r without any
// terminal handling, writing the prompt to out before each read. It serves
// non-interactive input such as piped scripts and tests.
func NewBufioReader(r io.Reader, out io.Writer) LineReader {
	return &bufioReader{
		reader: bufio.NewReader(r),
		out:    out,
	}
}

func (b *bufioReader) SetPrompt(prompt string) {
	b.prompt = prompt
}

func (b *bufioReader) Readline() (string, error) {
	fmt.Fprint(b.out, b.prompt)

	// ReadString imposes no line length limit.
	line, err := b.reader.ReadString('\n')
	switch {
	case err == io.EOF && line != "":
		// A final line without a trailing newline still executes.
		return line, nil
	case err != nil:
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func (b *bufioReader) Close() error {
	return nil
}
