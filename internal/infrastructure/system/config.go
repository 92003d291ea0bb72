// Package system provides infrastructure for CLI-level settings: output
// format, project location, validation mode and redaction.
package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	apperrors "github.com/buildprofile/buildprofile/internal/application/errors"
)

// Settings keys shared by flags, environment variables and the config file.
const (
	KeyProjectDir    = "project_dir"
	KeyFormat        = "format"
	KeyFailFast      = "fail_fast"
	KeyShowSecrets   = "show_secrets"
	KeyWatchDebounce = "watch_debounce"
	KeyNoColor       = "no_color"
)

// Settings is the resolved CLI configuration.
// This is infrastructure-level configuration separate from the build
// profile document.
type Settings struct {
	ProjectDir    string          `mapstructure:"project_dir" validate:"required"`
	Format        string          `mapstructure:"format" validate:"oneof=table json yaml sarif"`
	Redaction     RedactionConfig `mapstructure:"redaction"`
	WatchDebounce time.Duration   `mapstructure:"watch_debounce" validate:"min=10ms,max=1m"`
	FailFast      bool            `mapstructure:"fail_fast"`
	ShowSecrets   bool            `mapstructure:"show_secrets"`
	NoColor       bool            `mapstructure:"no_color"`
}

// RedactionConfig configures how env values are sanitized.
type RedactionConfig struct {
	HashMode      HashModeConfig `mapstructure:"hash_mode"`
	Patterns      []string       `mapstructure:"patterns"`
	SensitiveKeys []string       `mapstructure:"sensitive_keys"`
}

// HashModeConfig controls hash-based redaction.
type HashModeConfig struct {
	Salt    string `mapstructure:"salt"`
	Enabled bool   `mapstructure:"enabled"`
}

// DefaultSettings returns Settings with safe defaults for all fields.
func DefaultSettings() *Settings {
	return &Settings{
		ProjectDir:    ".",
		Format:        "table",
		WatchDebounce: 300 * time.Millisecond,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadSettings decodes settings from v, fills unset values from
// DefaultSettings and validates the result.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, apperrors.NewConfigurationError("settings", "failed to decode settings", err)
	}

	if err := mergo.Merge(&s, DefaultSettings()); err != nil {
		return nil, apperrors.NewConfigurationError("settings", "failed to apply defaults", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings against their constraints.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewConfigurationError("settings", "invalid settings", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return apperrors.NewConfigurationError("settings", strings.Join(msgs, "; "), nil)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s must be %s %s, got %v", fe.Field(), boundWord(fe.Tag()), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func boundWord(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}
