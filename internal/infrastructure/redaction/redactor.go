// Package redaction masks secrets in resolved build profiles before they
// are printed.
package redaction

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/buildprofile/buildprofile/internal/domain/entities"
)

const redactedMarker = "[REDACTED]"

// Redactor masks secrets in env values.
// All fields are read-only after construction, making it safe for concurrent use.
type Redactor struct {
	patterns      []*regexp.Regexp
	sensitiveKeys []string
	hashMode      bool
	salt          string

	// Gitleaks detector for secret detection.
	// If nil, falls back to regex patterns only
	gitleaksDetector *detect.Detector
}

// Config holds the configuration for the Redactor.
type Config struct {
	Logger *slog.Logger

	// Custom patterns to redact (e.g. "INT-[A-Z0-9]{16}")
	Patterns []string

	// Env keys whose values are always redacted, matched as
	// case-insensitive substrings. Nil selects DefaultSensitiveKeys.
	SensitiveKeys []string

	// If true, replace with hash instead of [REDACTED]
	HashMode bool

	// Salt for hashing. If empty, hash is deterministic but unsalted.
	Salt string

	// If true, disable gitleaks detector and use only regex patterns
	DisableGitleaks bool
}

// DefaultSensitiveKeys are env key fragments that mark a value as secret.
var DefaultSensitiveKeys = []string{"TOKEN", "SECRET", "PASSWORD", "PRIVATE_KEY", "API_KEY"}

// New creates a new Redactor with the given configuration.
func New(cfg Config) (*Redactor, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	keys := cfg.SensitiveKeys
	if keys == nil {
		keys = DefaultSensitiveKeys
	}

	r := &Redactor{
		hashMode: cfg.HashMode,
		salt:     cfg.Salt,
		patterns: make([]*regexp.Regexp, 0, len(cfg.Patterns)+len(defaultPatterns)),
	}
	for _, k := range keys {
		r.sensitiveKeys = append(r.sensitiveKeys, strings.ToUpper(k))
	}

	if !cfg.DisableGitleaks {
		detector, err := newGitleaksDetector()
		if err != nil {
			logger.Warn("gitleaks detector unavailable, using regex patterns only", "error", err)
		} else {
			r.gitleaksDetector = detector
		}
	}

	for _, p := range defaultPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile default pattern %s: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}

	for _, p := range cfg.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile custom pattern %s: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}

	return r, nil
}

// newGitleaksDetector creates a new gitleaks detector with default configuration.
func newGitleaksDetector() (*detect.Detector, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(config.DefaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read gitleaks config: %w", err)
	}

	var vc config.ViperConfig
	if err := v.Unmarshal(&vc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gitleaks config: %w", err)
	}

	cfg, err := vc.Translate()
	if err != nil {
		return nil, fmt.Errorf("failed to translate gitleaks config: %w", err)
	}

	return detect.NewDetector(cfg), nil
}

// ScrubString replaces sensitive patterns in a string.
// Uses the gitleaks detector first, then the regex patterns.
func (r *Redactor) ScrubString(input string) string {
	if input == "" {
		return ""
	}

	result := input
	if r.gitleaksDetector != nil {
		for _, finding := range r.gitleaksDetector.Detect(detect.Fragment{Raw: result}) {
			if finding.Secret == "" {
				continue
			}
			result = strings.ReplaceAll(result, finding.Secret, r.replacement(finding.Secret))
		}
	}

	for _, re := range r.patterns {
		result = re.ReplaceAllStringFunc(result, r.replacement)
	}

	return result
}

// ScrubEnvValue masks one env value. Values of sensitive keys are masked
// entirely; others are scanned with the key as context so assignment-style
// rules can match.
func (r *Redactor) ScrubEnvValue(key, value string) string {
	if value == "" {
		return ""
	}
	if r.isSensitiveKey(key) {
		return r.replacement(value)
	}

	if r.gitleaksDetector != nil {
		fragment := detect.Fragment{Raw: key + "=" + value}
		for _, finding := range r.gitleaksDetector.Detect(fragment) {
			if finding.Secret == "" {
				continue
			}
			value = strings.ReplaceAll(value, finding.Secret, r.replacement(finding.Secret))
		}
	}

	for _, re := range r.patterns {
		value = re.ReplaceAllStringFunc(value, r.replacement)
	}
	return value
}

// RedactEnv returns a copy of env with every value scrubbed.
func (r *Redactor) RedactEnv(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = r.ScrubEnvValue(k, v)
	}
	return out
}

// RedactProfiles returns copies of the profiles with env values scrubbed.
// The inputs are not modified.
func (r *Redactor) RedactProfiles(profiles []*entities.ResolvedProfile) []*entities.ResolvedProfile {
	out := make([]*entities.ResolvedProfile, 0, len(profiles))
	for _, p := range profiles {
		if p == nil {
			continue
		}
		clone := *p
		clone.Env = r.RedactEnv(maps.Clone(p.Env))
		out = append(out, &clone)
	}
	return out
}

func (r *Redactor) isSensitiveKey(key string) bool {
	upper := strings.ToUpper(key)
	for _, k := range r.sensitiveKeys {
		if strings.Contains(upper, k) {
			return true
		}
	}
	return false
}

func (r *Redactor) replacement(secret string) string {
	if r.hashMode {
		return r.hash(secret)
	}
	return redactedMarker
}

// hash returns a truncated HMAC-SHA256 hash of the secret.
// Format: [hmac:a1b2c3d4e5f6a7b8]
func (r *Redactor) hash(secret string) string {
	mac := hmac.New(sha256.New, []byte(r.salt))
	mac.Write([]byte(secret))
	sum := mac.Sum(nil)

	return fmt.Sprintf("[hmac:%s]", hex.EncodeToString(sum)[:16])
}

// defaultPatterns contains regexes for common secrets.
var defaultPatterns = []string{
	// AWS Access Key ID
	`\b((?:AKIA|ABIA|ACCA|ASIA)[0-9A-Z]{16})\b`,
	// Generic Private Key Header
	`-----BEGIN [A-Z ]+ PRIVATE KEY-----`,
	// Github Token
	`gh[pousr]_[A-Za-z0-9_]{36,255}`,
	// Slack Token
	`xox[baprs]-([0-9a-zA-Z]{10,48})?`,
}
