package output

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/buildprofile/buildprofile/internal/application/dto"
	"github.com/buildprofile/buildprofile/internal/domain/entities"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

const ruleWidth = 60

// TableFormatter formats profiles and reports for terminals.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer, enableColor bool) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: enableColor,
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// FormatProfiles writes each profile as an aligned key/value block.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) FormatProfiles(profiles []*entities.ResolvedProfile) error {
	for i, p := range profiles {
		if i > 0 {
			fmt.Fprintln(f.writer)
		}
		fmt.Fprintf(f.writer, "Profile: %s (%s)\n", f.colorize(p.Name, colorBold), p.Platform)
		fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", ruleWidth), colorGray))

		f.row("distribution", string(p.Distribution))
		f.row("credentialsSource", string(p.CredentialsSource))
		if p.DevelopmentClient != nil {
			f.row("developmentClient", fmt.Sprintf("%t", *p.DevelopmentClient))
		}
		if p.Node != nil {
			f.row("node", *p.Node)
		}
		if p.BuildType != nil {
			f.row("buildType", *p.BuildType)
		}
		if len(p.Env) > 0 {
			f.row("env", "")
			keys := make([]string, 0, len(p.Env))
			for k := range p.Env {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				f.row("  "+k, p.Env[k])
			}
		}
		if p.Cache != nil {
			f.formatCache(p.Cache)
		}
	}
	return nil
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatCache(c *entities.CacheSettings) {
	f.row("cache", "")
	if c.Disabled != nil {
		f.row("  disabled", fmt.Sprintf("%t", *c.Disabled))
	}
	if c.Key != nil {
		f.row("  key", *c.Key)
	}
	if c.CacheDefaultPaths != nil {
		f.row("  cacheDefaultPaths", fmt.Sprintf("%t", *c.CacheDefaultPaths))
	}
	if len(c.CustomPaths) > 0 {
		f.row("  customPaths", strings.Join(c.CustomPaths, ", "))
	}
}

//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) row(key, value string) {
	fmt.Fprintf(f.writer, "  %-20s %s\n", key, value)
}

// FormatNames writes one name per line.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) FormatNames(names []string) error {
	if len(names) == 0 {
		fmt.Fprintln(f.writer, "No build profiles found.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(f.writer, name)
	}
	return nil
}

// FormatReport writes each problem followed by a summary.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) FormatReport(report *dto.ValidationReport) error {
	if report.ConfigPath != "" {
		fmt.Fprintf(f.writer, "Config: %s\n", report.ConfigPath)
	}
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", ruleWidth), colorGray))

	for _, p := range report.Problems {
		fmt.Fprintf(f.writer, "%s %s (%s)\n", f.colorize("✗", colorRed), f.colorize(p.Profile, colorBold), p.PlatformLabel())

		violations := p.Violations()
		if len(violations) == 0 {
			fmt.Fprintf(f.writer, "    %s\n", p.Err)
			continue
		}
		for _, v := range violations {
			fmt.Fprintf(f.writer, "    %s: %s\n", v.Field, v.Message)
		}
	}

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", ruleWidth), colorGray))
	if !report.HasProblems() {
		fmt.Fprintf(f.writer, "%s All %d profile resolutions are valid\n", f.colorize("✓", colorGreen), report.Checked)
		return nil
	}
	fmt.Fprintf(f.writer, "Checked: %d  Problems: %s\n",
		report.Checked, f.colorize(fmt.Sprintf("%d", len(report.Problems)), colorRed))
	return nil
}
