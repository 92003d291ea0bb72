package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildprofile/buildprofile/internal/application/dto"
	apperrors "github.com/buildprofile/buildprofile/internal/application/errors"
	"github.com/buildprofile/buildprofile/internal/domain/entities"
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

func ptr[T any](v T) *T { return &v }

func createTestProfiles() []*entities.ResolvedProfile {
	return []*entities.ResolvedProfile{
		{
			Name:              "release",
			Platform:          values.PlatformAndroid,
			Distribution:      values.DistributionStore,
			CredentialsSource: values.CredentialsSourceRemote,
			Node:              ptr("18.17.1"),
			BuildType:         ptr("app-bundle"),
			Env:               map[string]string{"B": "2", "A": "1"},
			Cache: &entities.CacheSettings{
				Disabled:    ptr(false),
				CustomPaths: []string{"node_modules"},
			},
		},
		{
			Name:              "release",
			Platform:          values.PlatformIOS,
			Distribution:      values.DistributionInternal,
			CredentialsSource: values.CredentialsSourceLocal,
			DevelopmentClient: ptr(true),
		},
	}
}

func createTestReport() *dto.ValidationReport {
	return &dto.ValidationReport{
		ConfigPath: "buildprofile.json",
		Checked:    4,
		Problems: []dto.ProfileProblem{
			{
				Profile:  "broken",
				Platform: values.PlatformAndroid,
				Err: apperrors.ValidationErrors{
					{
						Field:      "build.broken.android.buildType",
						Constraint: apperrors.ConstraintEnum,
						Message:    `"aab" is not allowed, must be one of [apk, app-bundle]`,
						Allowed:    []string{"apk", "app-bundle"},
					},
					apperrors.NewValidationError("build.broken.node", apperrors.ConstraintFormat, "bad version"),
				},
			},
			{
				Profile:  "loop",
				Platform: values.PlatformIOS,
				Err:      &entities.ExtendsCycleError{Cycle: []string{"loop", "loop"}},
			},
		},
	}
}

func TestJSONFormatter_FormatProfiles(t *testing.T) {
	t.Parallel()

	t.Run("single profile is an object", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter(&buf, true).FormatProfiles(createTestProfiles()[:1]))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "release", decoded["name"])
		assert.Equal(t, "android", decoded["platform"])
		assert.Equal(t, "store", decoded["distribution"])
		assert.Equal(t, "app-bundle", decoded["buildType"])
		assert.Equal(t, map[string]any{"A": "1", "B": "2"}, decoded["env"])
		assert.NotContains(t, decoded, "developmentClient")
		assert.Contains(t, buf.String(), "\n  ")
	})

	t.Run("several profiles are an array", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, NewJSONFormatter(&buf, false).FormatProfiles(createTestProfiles()))

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "ios", decoded[1]["platform"])
		assert.Equal(t, true, decoded[1]["developmentClient"])
	})
}

func TestJSONFormatter_FormatNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, false).FormatNames(nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestJSONFormatter_FormatReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, true).FormatReport(createTestReport()))

	var decoded reportDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.False(t, decoded.Valid)
	assert.Equal(t, 4, decoded.Checked)
	require.Len(t, decoded.Problems, 2)
	assert.Len(t, decoded.Problems[0].Violations, 2)
	assert.Equal(t, []string{"apk", "app-bundle"}, decoded.Problems[0].Violations[0].Allowed)
	assert.Empty(t, decoded.Problems[1].Violations)
	assert.Contains(t, decoded.Problems[1].Error, "circular extends detected")
}

func TestYAMLFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).FormatProfiles(createTestProfiles()[:1]))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "release", decoded["name"])
	assert.Equal(t, "18.17.1", decoded["node"])

	buf.Reset()
	require.NoError(t, NewYAMLFormatter(&buf).FormatNames([]string{"a", "b"}))
	assert.Equal(t, "- a\n- b\n", buf.String())

	buf.Reset()
	require.NoError(t, NewYAMLFormatter(&buf).FormatReport(&dto.ValidationReport{Checked: 2}))
	assert.Contains(t, buf.String(), "valid: true")
}

func TestTableFormatter_FormatProfiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf, false).FormatProfiles(createTestProfiles()))

	out := buf.String()
	assert.Contains(t, out, "Profile: release (android)")
	assert.Contains(t, out, "Profile: release (ios)")
	assert.Contains(t, out, "buildType")
	assert.Contains(t, out, "app-bundle")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("  A ")), bytes.Index(buf.Bytes(), []byte("  B ")))
	assert.NotContains(t, out, "\033[")
}

func TestTableFormatter_FormatNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf, false).FormatNames(nil))
	assert.Equal(t, "No build profiles found.\n", buf.String())

	buf.Reset()
	require.NoError(t, NewTableFormatter(&buf, false).FormatNames([]string{"base", "release"}))
	assert.Equal(t, "base\nrelease\n", buf.String())
}

func TestTableFormatter_FormatReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf, false).FormatReport(createTestReport()))
	out := buf.String()
	assert.Contains(t, out, "✗ broken (android)")
	assert.Contains(t, out, "build.broken.android.buildType")
	assert.Contains(t, out, "circular extends detected: loop -> loop")
	assert.Contains(t, out, "Checked: 4  Problems: 2")

	buf.Reset()
	require.NoError(t, NewTableFormatter(&buf, false).FormatReport(&dto.ValidationReport{Checked: 6}))
	assert.Contains(t, buf.String(), "✓ All 6 profile resolutions are valid")
}

func TestSARIFFormatter_FormatReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewSARIFFormatter(&buf, "buildprofile.json").FormatReport(createTestReport()))

	var decoded struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID  string `json:"ruleId"`
				Level   string `json:"level"`
				Message struct {
					Text string `json:"text"`
				} `json:"message"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "2.1.0", decoded.Version)
	require.Len(t, decoded.Runs, 1)
	run := decoded.Runs[0]
	assert.Equal(t, "buildprofile", run.Tool.Driver.Name)
	assert.Len(t, run.Tool.Driver.Rules, 4)

	require.Len(t, run.Results, 3)
	assert.Equal(t, apperrors.ConstraintEnum, run.Results[0].RuleID)
	assert.Equal(t, apperrors.ConstraintFormat, run.Results[1].RuleID)
	assert.Equal(t, ruleResolution, run.Results[2].RuleID)
	assert.Equal(t, "error", run.Results[0].Level)
	assert.Contains(t, run.Results[0].Message.Text, "build.broken.android.buildType")
}

func TestProblemViolations_PlainError(t *testing.T) {
	t.Parallel()

	p := dto.ProfileProblem{Err: errors.New("boom")}
	assert.Nil(t, p.Violations())
}
