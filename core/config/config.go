package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	colors "gopkg.in/go-playground/colors.v1"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	// ConfigurationName is the file name the interpreter reads its settings
	// from, relative to the configuration directory.
	ConfigurationName = "config.yaml"
)

// Configuration holds the interpreter's settings. All fields have working
// defaults; a configuration file only needs the fields it wants to change.
type Configuration struct {
	configDir string
	configFs  afero.Fs

	// Prompt is written before each input line, followed by a single space.
	Prompt string `json:"prompt" validate:"required"`

	// PromptColor optionally colors the prompt on terminals, in any form
	// parseable as a color (e.g. "#5f87ff" or "rgb(95,135,255)"). Empty
	// leaves the prompt unstyled.
	PromptColor string `json:"prompt_color" validate:"omitempty,color"`

	// Version is the string the version built-in prints.
	Version string `json:"version" validate:"required"`

	// LogPath names the file interpreter events are appended to as JSON
	// lines. Empty disables event logging. Relative paths are resolved
	// against the configuration directory.
	LogPath string `json:"log_path"`

	// StrictPipes aborts the rest of a pipeline when a middle stage fails
	// to start instead of reconnecting the next stage to the interpreter's
	// stdin.
	StrictPipes bool `json:"strict_pipes"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})
	validate.RegisterValidation("color", func(fl validator.FieldLevel) bool {
		_, err := colors.Parse(fl.Field().String())
		return err == nil
	})

	return validate.Struct(c)
}

// PromptRGB parses PromptColor. It returns ok=false when no valid color is
// configured.
func (c *Configuration) PromptRGB() (r, g, b uint8, ok bool) {
	if c.PromptColor == "" {
		return 0, 0, 0, false
	}
	parsed, err := colors.Parse(c.PromptColor)
	if err != nil {
		return 0, 0, 0, false
	}
	rgb := parsed.ToRGB()
	return rgb.R, rgb.G, rgb.B, true
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// EventLogEnabled reports whether an event log file is configured.
func (c *Configuration) EventLogEnabled() bool {
	return c.LogPath != ""
}

func (c *Configuration) eventLogPath() string {
	if filepath.IsAbs(c.LogPath) {
		return c.LogPath
	}
	return filepath.Join(c.configDir, c.LogPath)
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.eventLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.eventLogPath(), os.O_RDONLY, 0600)
}

// Default returns the built-in configuration used when no file exists.
func Default() *Configuration {
	var out Configuration
	// Panics on failure because the data is embedded; it can't go bad at
	// runtime without a broken build.
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
