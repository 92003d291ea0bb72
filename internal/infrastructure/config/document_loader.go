// Package config provides infrastructure for loading build profile documents.
// This package handles file I/O and parsing; inheritance and merging live in
// the domain layer.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/buildprofile/buildprofile/internal/domain/entities"
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// ConfigFileName is the document every project keeps at its root.
const ConfigFileName = "buildprofile.json"

// buildSection holds the profile definitions.
const buildSection = "build"

// NotFoundError indicates the project has no configuration document.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("build profile configuration not found: %s", e.Path)
}

// Unwrap lets callers test with errors.Is(err, fs.ErrNotExist).
func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// ParseError indicates the document is not well-formed or has the wrong shape.
type ParseError struct {
	Err  error
	Path string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse build profile configuration: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse build profile configuration %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FileDocumentLoader reads ConfigFileName from a project directory.
type FileDocumentLoader struct {
	logger *slog.Logger
}

// NewFileDocumentLoader creates a new document loader.
func NewFileDocumentLoader(logger *slog.Logger) *FileDocumentLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileDocumentLoader{logger: logger}
}

// Path returns the location of the document for projectDir.
func Path(projectDir string) string {
	return filepath.Join(projectDir, ConfigFileName)
}

// Load reads and parses the document of the project at projectDir.
func (l *FileDocumentLoader) Load(ctx context.Context, projectDir string) (*entities.ConfigDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := Path(projectDir)

	// Security: Use os.OpenRoot to prevent path traversal attacks
	root, err := os.OpenRoot(projectDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to open project directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(ConfigFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to open build profile configuration: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	doc, err := ParseDocument(file)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}
		return nil, err
	}

	l.logger.Debug("loaded build profile configuration", "path", path, "profiles", doc.Len())
	return doc, nil
}

// ParseDocument parses a JSON document from r. Duplicate object keys are
// allowed and the last occurrence wins.
// Note: This does NOT resolve inheritance, only checks the document shape.
func ParseDocument(r io.Reader) (*entities.ConfigDocument, error) {
	dec := json.NewDecoder(r)

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: errors.New("document is empty")}
		}
		return nil, &ParseError{Err: err}
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected content after top-level value")
		}
		return nil, &ParseError{Err: err}
	}

	if raw == nil {
		return nil, &ParseError{Err: errors.New("document is empty")}
	}
	root, ok := raw.(map[string]any)
	if !ok {
		return nil, &ParseError{Err: fmt.Errorf("document root must be an object, got %s", kindOf(raw))}
	}

	build, ok := root[buildSection]
	if !ok || build == nil {
		return entities.NewConfigDocument(), nil
	}
	profiles, ok := build.(map[string]any)
	if !ok {
		return nil, &ParseError{Err: fmt.Errorf("%q must be an object, got %s", buildSection, kindOf(build))}
	}

	defs := make([]*entities.ProfileDefinition, 0, len(profiles))
	for name, body := range profiles {
		def, err := parseProfile(name, body)
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		defs = append(defs, def)
	}

	return entities.NewConfigDocument(defs...), nil
}

// parseProfile converts one raw profile entry.
func parseProfile(name string, body any) (*entities.ProfileDefinition, error) {
	fields, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("build profile %q must be an object, got %s", name, kindOf(body))
	}

	def := &entities.ProfileDefinition{
		Name:      name,
		Fields:    make(map[string]any, len(fields)),
		Platforms: make(map[values.Platform]map[string]any),
	}

	for key, value := range fields {
		switch {
		case key == entities.FieldExtends:
			if value == nil {
				continue
			}
			parent, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("build profile %q: %q must be a string, got %s", name, key, kindOf(value))
			}
			def.Extends = parent

		case values.IsPlatformKey(key):
			if value == nil {
				continue
			}
			overlay, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("build profile %q: %q must be an object, got %s", name, key, kindOf(value))
			}
			def.Platforms[values.Platform(key)] = normalizeMap(overlay)

		default:
			def.Fields[key] = normalize(value)
		}
	}

	return def, nil
}

// normalize copies decoded containers so definitions never share maps or
// slices with the raw tree.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

// kindOf names a decoded value's JSON kind for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
