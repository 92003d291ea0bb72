package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildprofile/buildprofile/internal/domain/values"
)

const sampleDocument = `{
  "build": {
    "base": {
      "node": "16.0.0",
      "env": { "A": "1" },
      "android": { "buildType": "apk" }
    },
    "release": {
      "extends": "base",
      "distribution": "internal",
      "cache": { "disabled": true, "customPaths": ["a", "b"] },
      "ios": { "buildType": "release", "retries": 3 }
    }
  }
}`

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))
	return dir
}

func TestParseDocument_Valid(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, []string{"base", "release"}, doc.ProfileNames())

	base, ok := doc.Profile("base")
	require.True(t, ok)
	assert.False(t, base.HasParent())
	assert.Equal(t, "16.0.0", base.Fields["node"])
	assert.Equal(t, map[string]any{"A": "1"}, base.Fields["env"])
	assert.Equal(t, map[string]any{"buildType": "apk"}, base.PlatformFields(values.PlatformAndroid))
	assert.NotContains(t, base.Fields, "android")

	release, ok := doc.Profile("release")
	require.True(t, ok)
	assert.Equal(t, "base", release.Extends)
	assert.NotContains(t, release.Fields, "extends")
	assert.Equal(t, map[string]any{
		"disabled":    true,
		"customPaths": []any{"a", "b"},
	}, release.Fields["cache"])
}

func TestParseDocument_NumbersAreFloat64(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	release, _ := doc.Profile("release")
	assert.Equal(t, float64(3), release.PlatformFields(values.PlatformIOS)["retries"])
}

func TestParseDocument_NoBuildSection(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument(strings.NewReader(`{"cli": {"version": ">= 1.0.0"}}`))
	require.NoError(t, err)
	assert.Empty(t, doc.ProfileNames())
}

func TestParseDocument_NullFieldsKept(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument(strings.NewReader(`{"build": {"a": {"extends": null, "node": null, "ios": null}}}`))
	require.NoError(t, err)

	a, _ := doc.Profile("a")
	assert.False(t, a.HasParent())
	assert.Contains(t, a.Fields, "node")
	assert.Nil(t, a.Fields["node"])
	assert.Nil(t, a.PlatformFields(values.PlatformIOS))
}

func TestParseDocument_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "malformed", input: `{"build": {`},
		{name: "empty", input: ``, wantMsg: "document is empty"},
		{name: "root array", input: `[1, 2]`, wantMsg: "document root must be an object"},
		{name: "build not object", input: `{"build": "x"}`, wantMsg: `"build" must be an object, got string`},
		{name: "profile not object", input: `{"build": {"a": 1}}`, wantMsg: `build profile "a" must be an object, got number`},
		{name: "extends not string", input: `{"build": {"a": {"extends": ["b"]}}}`, wantMsg: `"extends" must be a string, got array`},
		{name: "platform not object", input: `{"build": {"a": {"android": "apk"}}}`, wantMsg: `"android" must be an object, got string`},
		{name: "yaml block", input: "build:\n  release:\n    node: 12.0.0\n"},
		{name: "trailing garbage", input: `{"build": {}} x`},
		{name: "trailing brace", input: `{"build": {}}}`},
		{name: "second document", input: `{"build": {}} {"build": {}}`, wantMsg: "unexpected content after top-level value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDocument(strings.NewReader(tt.input))
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseDocument_DuplicateKeyLastWins(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument(strings.NewReader(
		`{"build": {"release": {"node": "12.0.0", "node": "13.0.0"}, "release": {"node": "14.0.0", "distribution": "internal"}}}`,
	))
	require.NoError(t, err)

	release, ok := doc.Profile("release")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"node": "14.0.0", "distribution": "internal"}, release.Fields)
}

func TestFileDocumentLoader_Load(t *testing.T) {
	t.Parallel()

	dir := writeDocument(t, sampleDocument)

	doc, err := NewFileDocumentLoader(nil).Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Len())
}

func TestFileDocumentLoader_NotFound(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		_, err := NewFileDocumentLoader(nil).Load(context.Background(), dir)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, filepath.Join(dir, ConfigFileName), notFound.Path)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewFileDocumentLoader(nil).Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestFileDocumentLoader_ParseErrorCarriesPath(t *testing.T) {
	t.Parallel()

	dir := writeDocument(t, `{"build": [}`)

	_, err := NewFileDocumentLoader(nil).Load(context.Background(), dir)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), parseErr.Path)
	assert.Contains(t, err.Error(), parseErr.Path)
}

func TestFileDocumentLoader_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileDocumentLoader(nil).Load(ctx, writeDocument(t, sampleDocument))
	require.ErrorIs(t, err, context.Canceled)
}
