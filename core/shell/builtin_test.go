package shell

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBuiltinShell returns a shell with per-command capture buffers wired so
// builtins can be invoked directly.
func newBuiltinShell(opts ...Option) (*Shell, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	opts = append([]Option{
		WithFS(afero.NewMemMapFs()),
		WithEnviron(NewMapEnviron()),
	}, opts...)

	s := New(nil, io.Discard, io.Discard, opts...)
	s.out, s.errOut = &out, &errOut
	return s, &out, &errOut
}

func TestBuiltinRegistry(t *testing.T) {
	for _, name := range []string{"exit", "echo", "type", "pwd", "cd"} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, IsBuiltin(name))
			assert.NotNil(t, AllBuiltins[name])
		})
	}

	// Internal helpers and anything else the user types must not dispatch.
	assert.False(t, IsBuiltin("debug_mode"))
	assert.False(t, IsBuiltin("requestExit"))
	assert.False(t, IsBuiltin("Echo"))
}

func TestEcho(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		expected string
	}{
		{"joins with single spaces", []string{"echo", "a", "b", "c"}, "a b c\n"},
		{"no arguments emits newline", []string{"echo"}, "\n"},
		{"preserves argument whitespace", []string{"echo", "a b", "c"}, "a b c\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, out, errOut := newBuiltinShell()

			status := Echo(s, tc.args)

			assert.Equal(t, 0, status)
			assert.Equal(t, tc.expected, out.String())
			assert.Empty(t, errOut.String(), "echo never writes to stderr")
		})
	}
}

func TestExit(t *testing.T) {
	t.Run("no argument exits zero", func(t *testing.T) {
		s, _, _ := newBuiltinShell()

		Exit(s, []string{"exit"})

		assert.True(t, s.exiting)
		assert.Equal(t, 0, s.exitCode)
	})

	t.Run("numeric argument becomes the status", func(t *testing.T) {
		s, _, _ := newBuiltinShell()

		Exit(s, []string{"exit", "7"})

		assert.True(t, s.exiting)
		assert.Equal(t, 7, s.exitCode)
	})

	t.Run("too many arguments", func(t *testing.T) {
		s, _, errOut := newBuiltinShell()

		status := Exit(s, []string{"exit", "1", "2"})

		assert.Equal(t, 1, status)
		assert.False(t, s.exiting, "shell must keep running")
		assert.Equal(t, "exit: invalid number of arguments\n", errOut.String())
	})

	t.Run("non-numeric argument", func(t *testing.T) {
		s, _, errOut := newBuiltinShell()

		status := Exit(s, []string{"exit", "banana"})

		assert.Equal(t, 1, status)
		assert.False(t, s.exiting)
		assert.Equal(t, "exit: banana: numeric argument required\n", errOut.String())
	})

	t.Run("negative argument", func(t *testing.T) {
		s, _, errOut := newBuiltinShell()

		status := Exit(s, []string{"exit", "-1"})

		assert.Equal(t, 1, status)
		assert.False(t, s.exiting)
		assert.Equal(t, "exit: -1: numeric argument required\n", errOut.String())
	})
}

func TestType(t *testing.T) {
	t.Run("builtin", func(t *testing.T) {
		s, out, _ := newBuiltinShell()

		status := Type(s, []string{"type", "exit"})

		assert.Equal(t, 0, status)
		assert.Equal(t, "exit is a shell builtin\n", out.String())
	})

	t.Run("executable on PATH", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/bin/cat", []byte{}, 0755))
		env := NewMapEnviron()
		env.Setenv(EnvPath, "/bin")

		s, out, _ := newBuiltinShell(WithFS(fsys), WithEnviron(env))

		status := Type(s, []string{"type", "cat"})

		assert.Equal(t, 0, status)
		assert.Equal(t, "cat is /bin/cat\n", out.String())
	})

	t.Run("not found", func(t *testing.T) {
		s, out, errOut := newBuiltinShell()

		status := Type(s, []string{"type", "nonexistent_cmd_xyz"})

		assert.Equal(t, 1, status)
		assert.Empty(t, out.String())
		assert.Equal(t, "nonexistent_cmd_xyz: not found\n", errOut.String())
	})

	t.Run("invalid arity", func(t *testing.T) {
		s, _, errOut := newBuiltinShell()

		status := Type(s, []string{"type", "a", "b"})

		assert.Equal(t, 1, status)
		assert.Equal(t, "type: invalid number of arguments\n", errOut.String())
	})
}

func TestPwd(t *testing.T) {
	s, out, _ := newBuiltinShell()

	status := Pwd(s, []string{"pwd"})
	require.Equal(t, 0, status)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd+"\n", out.String())
}

func TestCd(t *testing.T) {
	chdirTemp := func(t *testing.T) string {
		t.Helper()

		orig, err := os.Getwd()
		require.NoError(t, err)
		t.Cleanup(func() { _ = os.Chdir(orig) })

		dir := t.TempDir()
		require.NoError(t, os.Chdir(dir))

		// Resolve symlinks so comparisons against Getwd are stable.
		resolved, err := os.Getwd()
		require.NoError(t, err)
		return resolved
	}

	t.Run("changes directory", func(t *testing.T) {
		base := chdirTemp(t)
		require.NoError(t, os.Mkdir("sub", 0755))

		s, _, errOut := newBuiltinShell()
		status := Cd(s, []string{"cd", "sub"})

		assert.Equal(t, 0, status)
		assert.Empty(t, errOut.String())

		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, base+"/sub", wd)
	})

	t.Run("missing path leaves directory unchanged", func(t *testing.T) {
		base := chdirTemp(t)

		s, _, errOut := newBuiltinShell()
		status := Cd(s, []string{"cd", "/definitely/not/here"})

		assert.Equal(t, 1, status)
		assert.Equal(t, "cd: /definitely/not/here: No such file or directory\n", errOut.String())

		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, base, wd)
	})

	t.Run("tilde expands to HOME", func(t *testing.T) {
		base := chdirTemp(t)

		env := NewMapEnviron()
		env.Setenv(EnvHome, base)

		s, _, _ := newBuiltinShell(WithEnviron(env))

		require.NoError(t, os.Chdir("/"))
		status := Cd(s, []string{"cd", "~"})
		require.Equal(t, 0, status)

		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, base, wd)
	})

	t.Run("diagnostic reports the expanded path", func(t *testing.T) {
		base := chdirTemp(t)

		env := NewMapEnviron()
		env.Setenv(EnvHome, base)

		s, _, errOut := newBuiltinShell(WithEnviron(env))
		status := Cd(s, []string{"cd", "~/definitely-not-here"})

		assert.Equal(t, 1, status)
		assert.Equal(t, "cd: "+base+"/definitely-not-here: No such file or directory\n", errOut.String())
	})

	t.Run("invalid arity", func(t *testing.T) {
		s, _, errOut := newBuiltinShell()

		status := Cd(s, []string{"cd"})

		assert.Equal(t, 1, status)
		assert.Equal(t, "cd: invalid number of arguments\n", errOut.String())
	})
}
