package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/buildprofile/buildprofile/internal/application/dto"
	"github.com/buildprofile/buildprofile/internal/domain/entities"
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// errProblemsFound signals a completed validation run that found problems.
// The report has already been printed, so main only sets the exit code.
var errProblemsFound = errors.New("build profile validation found problems")

// platformFlagUsage documents the --platform flag.
const platformFlagUsage = "target platform: android, ios or all"

// parsePlatforms converts the --platform flag value.
func parsePlatforms(value string) ([]values.Platform, error) {
	platforms, err := values.ParsePlatforms(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --platform: %w", err)
	}
	return platforms, nil
}

// parseSinglePlatform converts a --platform value that must name one platform.
func parseSinglePlatform(value string) (values.Platform, error) {
	platforms, err := parsePlatforms(value)
	if err != nil {
		return "", err
	}
	if len(platforms) != 1 {
		return "", fmt.Errorf("--platform must name a single platform, got %q", value)
	}
	return platforms[0], nil
}

// writeProfiles prints profiles with the configured formatter.
func writeProfiles(cmdCtx *CommandContext, w io.Writer, profiles []*entities.ResolvedProfile) error {
	c := cmdCtx.Container
	formatter, err := c.Formatters().CreateProfileFormatter(c.Settings().Format, w, c.FormatterOptions())
	if err != nil {
		return err
	}
	return formatter.FormatProfiles(c.ForDisplay(profiles))
}

// writeReport prints a validation report and returns errProblemsFound when
// the report has problems.
func writeReport(cmdCtx *CommandContext, w io.Writer, report *dto.ValidationReport) error {
	c := cmdCtx.Container
	formatter, err := c.Formatters().CreateReportFormatter(c.Settings().Format, w, c.FormatterOptions())
	if err != nil {
		return err
	}
	if err := formatter.FormatReport(report); err != nil {
		return err
	}
	if report.HasProblems() {
		return errProblemsFound
	}
	return nil
}
