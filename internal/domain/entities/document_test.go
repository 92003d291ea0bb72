package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buildprofile/buildprofile/internal/domain/values"
)

func TestConfigDocument_ProfileNames_Sorted(t *testing.T) {
	t.Parallel()

	doc := NewConfigDocument(
		&ProfileDefinition{Name: "release"},
		&ProfileDefinition{Name: "blah"},
	)

	assert.Equal(t, []string{"blah", "release"}, doc.ProfileNames())
	assert.Equal(t, 2, doc.Len())
}

func TestConfigDocument_ProfileNames_IndependentOfOrder(t *testing.T) {
	t.Parallel()

	a := NewConfigDocument(&ProfileDefinition{Name: "release"}, &ProfileDefinition{Name: "blah"})
	b := NewConfigDocument(&ProfileDefinition{Name: "blah"}, &ProfileDefinition{Name: "release"})

	assert.Equal(t, a.ProfileNames(), b.ProfileNames())
}

func TestConfigDocument_Empty(t *testing.T) {
	t.Parallel()

	doc := NewConfigDocument()
	assert.Empty(t, doc.ProfileNames())
	assert.NotNil(t, doc.ProfileNames())
	_, ok := doc.Profile("release")
	assert.False(t, ok)
}

func TestConfigDocument_Profile(t *testing.T) {
	t.Parallel()

	def := &ProfileDefinition{Name: "release", Extends: "base"}
	doc := NewConfigDocument(def, nil)

	got, ok := doc.Profile("release")
	assert.True(t, ok)
	assert.Same(t, def, got)
	assert.True(t, got.HasParent())

	_, ok = doc.Profile("missing")
	assert.False(t, ok)
}

func TestProfileDefinition_PlatformFields(t *testing.T) {
	t.Parallel()

	def := &ProfileDefinition{Name: "release"}
	assert.Nil(t, def.PlatformFields(values.PlatformAndroid))

	def.Platforms = map[values.Platform]map[string]any{}
	assert.Nil(t, def.PlatformFields(values.PlatformIOS))
}
