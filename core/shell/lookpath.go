package shell

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is the error resulting if a path search failed to find an
// executable file.
var ErrNotFound = exec.ErrNotFound

// EnvPath and EnvHome name the environment variables the shell reads.
const (
	EnvPath = "PATH"
	EnvHome = "HOME"
)

func findFile(fsys afero.Fs, file string) bool {
	d, err := fsys.Stat(file)
	return err == nil && d.Mode().IsRegular()
}

// LookPath searches for a file named file in the directories named by the
// PATH environment variable, returning the first match in PATH order. If
// file contains a slash, it is tried directly and the PATH is not consulted.
//
// Resolution only requires a regular file with a matching name; execute
// permission is checked by the operating system at spawn time.
func LookPath(fsys afero.Fs, env Environ, file string) (string, error) {
	if strings.Contains(file, "/") {
		if findFile(fsys, file) {
			return file, nil
		}
		return "", ErrNotFound
	}

	path := env.Getenv(EnvPath)
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if findFile(fsys, candidate) {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}
