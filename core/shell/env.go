package shell

import (
	"os"
	"sync"
)

// Environ provides read-only access to environment variables. The shell
// never writes to the environment; PATH and HOME are looked up fresh on
// every use.
type Environ interface {
	// Getenv retrieves the value of the environment variable named by the
	// key. It returns the value, which will be empty if the variable is not
	// present.
	Getenv(key string) string
}

type osEnviron struct{}

func (osEnviron) Getenv(key string) string { return os.Getenv(key) }

// OSEnviron returns an Environ backed by the process's real environment.
func OSEnviron() Environ {
	return osEnviron{}
}

// MapEnviron implements an in-memory Environ.
type MapEnviron struct {
	rw  sync.RWMutex
	env map[string]string
}

var _ Environ = (*MapEnviron)(nil)

// NewMapEnviron creates a new environment backed by a map.
func NewMapEnviron() *MapEnviron {
	return &MapEnviron{}
}

// Setenv sets the value of the environment variable named by the key.
func (m *MapEnviron) Setenv(key, value string) {
	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
}

// Getenv implements Environ.Getenv.
func (m *MapEnviron) Getenv(key string) string {
	m.rw.RLock()
	defer m.rw.RUnlock()
	return m.env[key]
}

type fallbackEnviron struct {
	base     Environ
	fallback map[string]string
}

// WithFallback wraps base so that keys absent from it resolve through
// fallback instead.
func WithFallback(base Environ, fallback map[string]string) Environ {
	return &fallbackEnviron{base: base, fallback: fallback}
}

func (f *fallbackEnviron) Getenv(key string) string {
	if v := f.base.Getenv(key); v != "" {
		return v
	}
	return f.fallback[key]
}
