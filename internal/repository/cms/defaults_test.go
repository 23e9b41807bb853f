package cms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledDefaultsAreComplete(t *testing.T) {
	d := Defaults()

	assert.NotEmpty(t, d.Navigation.Items)
	assert.NotEmpty(t, d.Hero.Title)
	assert.NotEmpty(t, d.Services.Services)
	assert.NotEmpty(t, d.Projects.Projects)
	assert.NotEmpty(t, d.Contact.FormFields)
	assert.NotEmpty(t, d.Footer.Links)

	for _, f := range d.Contact.FormFields {
		assert.True(t, f.Kind.Known(), "field %s has kind %q", f.Name, f.Kind)
	}

	slugs := map[string]bool{}
	for _, p := range d.Projects.Projects {
		assert.NotEmpty(t, p.Slug)
		assert.False(t, slugs[p.Slug], "duplicate slug %s", p.Slug)
		slugs[p.Slug] = true
	}
}

func TestDefaultsReturnsIndependentCopies(t *testing.T) {
	a := Defaults()
	a.Hero.Title = "changed"
	a.Projects.Projects[0].Title = "changed"

	b := Defaults()
	assert.NotEqual(t, "changed", b.Hero.Title)
	assert.NotEqual(t, "changed", b.Projects.Projects[0].Title)
}

func TestParseDefaultsRejectsInvalidYAML(t *testing.T) {
	_, err := parseDefaults([]byte("hero: [unclosed"))
	require.Error(t, err)
}
