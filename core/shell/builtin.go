package shell

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AllBuiltins holds every registered shell builtin, keyed by command name.
// Dispatch only ever consults this map, so user input can never reach
// anything that was not explicitly registered here.
var AllBuiltins = make(map[string]Builtin)

// Builtin is a command implemented by the shell itself, without spawning a
// process.
type Builtin interface {
	Main(s *Shell, args []string) int
}

// BuiltinFunc adapts a function to the Builtin interface.
type BuiltinFunc func(s *Shell, args []string) int

// Main implements Builtin.
func (f BuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// IsBuiltin reports whether name is a registered shell builtin.
func IsBuiltin(name string) bool {
	_, ok := AllBuiltins[name]
	return ok
}

// oneArgExactly reports whether the builtin received exactly one argument,
// writing the arity diagnostic otherwise. args[0] is the command name.
func oneArgExactly(s *Shell, args []string) bool {
	if len(args) != 2 {
		fmt.Fprintf(s.errOut, "%s: invalid number of arguments\n", args[0])
		return false
	}
	return true
}

// Exit terminates the shell. With no argument the exit status is 0, with a
// single non-negative integer argument the status is that integer.
func Exit(s *Shell, args []string) int {
	if len(args) == 1 {
		s.requestExit(0)
		return 0
	}

	if !oneArgExactly(s, args) {
		return 1
	}

	code, err := strconv.Atoi(args[1])
	if err != nil || code < 0 {
		fmt.Fprintf(s.errOut, "%s: %s: numeric argument required\n", args[0], args[1])
		return 1
	}

	s.requestExit(code)
	return 0
}

// Echo writes its arguments joined by single spaces, followed by a newline.
func Echo(s *Shell, args []string) int {
	fmt.Fprintf(s.out, "%s\n", strings.Join(args[1:], " "))
	return 0
}

// Type reports whether its argument names a builtin or an executable on the
// PATH.
func Type(s *Shell, args []string) int {
	if !oneArgExactly(s, args) {
		return 1
	}

	name := args[1]
	if IsBuiltin(name) {
		fmt.Fprintf(s.out, "%s is a shell builtin\n", name)
		return 0
	}

	path, err := LookPath(s.fs, s.env, name)
	if err != nil {
		fmt.Fprintf(s.errOut, "%s: not found\n", name)
		return 1
	}

	fmt.Fprintf(s.out, "%s is %s\n", name, path)
	return 0
}

// Pwd writes the absolute path of the current working directory. The shell
// does not shadow the directory: this is always the process's own notion of
// it, the same one child processes inherit.
func Pwd(s *Shell, args []string) int {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(s.errOut, "%s: %v\n", args[0], err)
		return 1
	}

	fmt.Fprintf(s.out, "%s\n", wd)
	return 0
}

// Cd changes the process's working directory. A "~" anywhere in the
// argument is replaced with the value of HOME before resolving.
func Cd(s *Shell, args []string) int {
	if !oneArgExactly(s, args) {
		return 1
	}

	target := args[1]
	if strings.Contains(target, "~") {
		target = strings.ReplaceAll(target, "~", s.env.Getenv(EnvHome))
	}

	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(s.errOut, "%s: %s: No such file or directory\n", args[0], target)
		return 1
	}
	return 0
}

func init() {
	AllBuiltins["exit"] = BuiltinFunc(Exit)
	AllBuiltins["echo"] = BuiltinFunc(Echo)
	AllBuiltins["type"] = BuiltinFunc(Type)
	AllBuiltins["pwd"] = BuiltinFunc(Pwd)
	AllBuiltins["cd"] = BuiltinFunc(Cd)
}
