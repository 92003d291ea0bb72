package config

import (
	"bytes"
	"strings"
	"testing"
)

// FuzzParseDocument fuzzes document parsing for panics on malformed input.
func FuzzParseDocument(f *testing.F) {
	seeds := []string{
		sampleDocument,
		`{"build": {}}`,
		`{"build": {"a": {"extends": "a"}}}`,
		`{"build": {"a": {"env": {"K": 1}}}}`,
		strings.Repeat(`{"a":`, 500) + "1" + strings.Repeat("}", 500),
		`{"build": {"a": {"node": "\xff\xfe"}}}`,
		"",
		"   \n\t  \n",
		`{"build": null}`,
		`[]`,
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("PANIC on input (len=%d): %v", len(data), r)
			}
		}()

		_, err := ParseDocument(bytes.NewReader(data))
		_ = err // Ignore error, just check for panic
	})
}
