package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestPreferred(t *testing.T) {
	assert := assert.New(t)

	system := func(locales ...string) func() []string {
		return func() []string { return locales }
	}

	table := [](struct {
		name     string
		override string
		system   []string
		tag      language.Tag
	}){
		{"fallback", "", nil, Fallback},
		{"system", "", []string{"fr-FR", "en-US"}, language.MustParse("fr-FR")},
		{"override", "de-DE", []string{"fr-FR"}, language.MustParse("de-DE")},
		{"override_list", " , en-GB,fr", []string{"fr-FR"}, language.MustParse("en-GB")},
		{"override_blank", "  ", []string{"ja-JP"}, language.MustParse("ja-JP")},
		{"skip_invalid", "not a tag!,es", nil, language.MustParse("es")},
		{"all_invalid", "", []string{"???"}, Fallback},
	}

	for _, entry := range table {
		assert.Equal(entry.tag, Preferred(entry.override, system(entry.system...)), entry.name)
	}
}

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("case one: bad", From("case %v: %v", "one", "bad"))
	assert.Equal(tag, Language())
}
