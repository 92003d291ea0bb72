// Package container provides dependency injection for the application.
package container

import (
	"fmt"
	"log/slog"

	"github.com/buildprofile/buildprofile/internal/application/ports"
	"github.com/buildprofile/buildprofile/internal/application/services"
	"github.com/buildprofile/buildprofile/internal/domain/entities"
	"github.com/buildprofile/buildprofile/internal/infrastructure/config"
	"github.com/buildprofile/buildprofile/internal/infrastructure/output"
	"github.com/buildprofile/buildprofile/internal/infrastructure/redaction"
	"github.com/buildprofile/buildprofile/internal/infrastructure/system"
	"github.com/buildprofile/buildprofile/internal/infrastructure/validation"
	"github.com/buildprofile/buildprofile/internal/infrastructure/watch"
)

// Container holds all application dependencies.
type Container struct {
	loader     ports.DocumentLoader
	validator  ports.SchemaValidator
	redactor   *redaction.Redactor
	formatters *output.FormatterFactory
	settings   *system.Settings
	logger     *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger   *slog.Logger
	Settings *system.Settings
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Settings == nil {
		opts.Settings = system.DefaultSettings()
	}

	validator, err := newSchemaValidator()
	if err != nil {
		return nil, err
	}

	redactor, err := redaction.New(redaction.Config{
		Logger:        opts.Logger,
		Patterns:      opts.Settings.Redaction.Patterns,
		SensitiveKeys: opts.Settings.Redaction.SensitiveKeys,
		HashMode:      opts.Settings.Redaction.HashMode.Enabled,
		Salt:          opts.Settings.Redaction.HashMode.Salt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redactor: %w", err)
	}

	return &Container{
		loader:     config.NewFileDocumentLoader(opts.Logger),
		validator:  validator,
		redactor:   redactor,
		formatters: output.NewFormatterFactory(),
		settings:   opts.Settings,
		logger:     opts.Logger,
	}, nil
}

func newSchemaValidator() (ports.SchemaValidator, error) {
	v, err := validation.NewSchemaValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize schema validator: %w", err)
	}
	return v, nil
}

// NewProfileReader returns a reader with its own document cache.
// Each call re-reads the document on first use.
func (c *Container) NewProfileReader() *services.ProfileReader {
	return services.NewProfileReader(c.settings.ProjectDir, c.loader, c.validator, services.ReaderOptions{
		Logger:   c.logger,
		FailFast: c.settings.FailFast,
	})
}

// NewWatcher returns a watcher for the project's document.
func (c *Container) NewWatcher() *watch.DocumentWatcher {
	return watch.NewDocumentWatcher(c.ConfigPath(), c.settings.WatchDebounce, c.logger)
}

// ForDisplay prepares profiles for printing: env values are redacted
// unless secrets were requested.
func (c *Container) ForDisplay(profiles []*entities.ResolvedProfile) []*entities.ResolvedProfile {
	if c.settings.ShowSecrets {
		return profiles
	}
	var redactor ports.ProfileRedactor = c.redactor
	return redactor.RedactProfiles(profiles)
}

// FormatterOptions returns the formatter options derived from settings.
func (c *Container) FormatterOptions() ports.FormatterOptions {
	return ports.FormatterOptions{
		ConfigPath:  c.ConfigPath(),
		Indent:      true,
		EnableColor: !c.settings.NoColor,
	}
}

// Formatters returns the formatter factory.
func (c *Container) Formatters() *output.FormatterFactory {
	return c.formatters
}

// ConfigPath returns the location of the project's document.
func (c *Container) ConfigPath() string {
	return config.Path(c.settings.ProjectDir)
}

// Settings returns the resolved CLI settings.
func (c *Container) Settings() *system.Settings {
	return c.settings
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
