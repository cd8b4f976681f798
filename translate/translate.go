// Package translate formats user-visible messages for the user's locale.
//
// The MACHINE_LANG environment variable, a comma separated list of BCP 47
// tags, overrides the system locales. It is read once, when the package is
// initialized.
package translate

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is the language used when no preferred locale is known.
var Fallback = language.AmericanEnglish

var (
	tag     = Preferred(os.Getenv("MACHINE_LANG"), systemLocales)
	printer = message.NewPrinter(tag)
)

// systemLocales returns the preferred system locales.
func systemLocales() []string {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("machine: locale: %v", err)
	}

	return locales
}

// Preferred picks the language for messages. Tags listed in override win
// over the system locales; unparseable tags are skipped.
func Preferred(override string, system func() []string) language.Tag {
	var tags []string
	for _, str := range strings.Split(override, ",") {
		str = strings.TrimSpace(str)
		if len(str) != 0 {
			tags = append(tags, str)
		}
	}

	if len(tags) == 0 {
		tags = system()
	}

	for _, str := range tags {
		parsed, err := language.Parse(str)
		if err == nil {
			return parsed
		}
	}

	return Fallback
}

// Language returns the language messages are printed in.
func Language() language.Tag {
	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
