package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// ConfigurationName is the file name the shell's configuration lives under.
const ConfigurationName = "config.yaml"

type Configuration struct {
	// Prompt is written before each read. Defaults to "$ " when empty.
	Prompt string `json:"prompt"`

	// Motd is printed once before the first prompt.
	Motd string `json:"motd"`

	// HistoryFile persists interactive line history between sessions.
	// History is kept in memory only when empty.
	HistoryFile string `json:"history_file"`

	// DefaultPath is the executable search path used when the PATH
	// environment variable is unset.
	DefaultPath string `json:"default_path" validate:"required"`

	// Debug starts the shell with command tracing enabled.
	Debug bool `json:"debug"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the embedded default configuration.
func Default() *Configuration {
	return defaultConfig()
}
