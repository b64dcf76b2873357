package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Monstera Deliciosa":        "monstera-deliciosa",
		"Echinacea purpúrea":        "echinacea-purpurea",
		"Fuchsia × hybrida 'Swing'": "fuchsia-hybrida-swing",
		"  10cm Terracotta Pot  ":   "10cm-terracotta-pot",
		"Rosa 'Père David'":         "rosa-pere-david",
		"---":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	slug := Slugify("Acer palmátum")
	assert.Equal(t, slug, Slugify(slug))
}
