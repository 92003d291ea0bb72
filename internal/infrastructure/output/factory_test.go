package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildprofile/buildprofile/internal/application/ports"
)

func TestFormatterFactory_CreateProfileFormatter(t *testing.T) {
	t.Parallel()
	factory := NewFormatterFactory()
	buf := &bytes.Buffer{}

	tests := []struct {
		name        string
		format      string
		wantType    any
		errContains string
	}{
		{name: "table format", format: "table", wantType: &TableFormatter{}},
		{name: "json format", format: "json", wantType: &JSONFormatter{}},
		{name: "yaml format", format: "yaml", wantType: &YAMLFormatter{}},
		{name: "sarif is report only", format: "sarif", errContains: "unknown format: sarif"},
		{name: "unknown format", format: "invalid", errContains: "unknown format: invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			formatter, err := factory.CreateProfileFormatter(tt.format, buf, ports.FormatterOptions{})
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, formatter)
		})
	}
}

func TestFormatterFactory_CreateReportFormatter(t *testing.T) {
	t.Parallel()
	factory := NewFormatterFactory()

	formatter, err := factory.CreateReportFormatter("sarif", &bytes.Buffer{}, ports.FormatterOptions{ConfigPath: "buildprofile.json"})
	require.NoError(t, err)
	assert.IsType(t, &SARIFFormatter{}, formatter)

	_, err = factory.CreateReportFormatter("junit", &bytes.Buffer{}, ports.FormatterOptions{})
	assert.ErrorContains(t, err, "unknown format: junit")
}

func TestFormatterFactory_SupportedFormats(t *testing.T) {
	t.Parallel()
	factory := NewFormatterFactory()

	assert.Equal(t, []string{"table", "json", "yaml"}, factory.SupportedProfileFormats())
	assert.Equal(t, []string{"table", "json", "yaml", "sarif"}, factory.SupportedReportFormats())
	assert.True(t, factory.IsSupported("sarif"))
	assert.False(t, factory.IsSupported("junit"))
}
