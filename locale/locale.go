// Package locale derives the user's language and country from the
// POSIX locale environment and translates country display names.
package locale

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// envVars are consulted in POSIX precedence order.
var envVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// FromEnv returns the tag of the first non-empty locale variable, or
// language.Und if none is set or it cannot be parsed.
func FromEnv() language.Tag {
	for _, name := range envVars {
		if v := os.Getenv(name); v != "" {
			tag, err := Parse(v)
			if err != nil {
				return language.Und
			}
			return tag
		}
	}
	return language.Und
}

// Parse converts a POSIX locale name such as "en_GB.UTF-8" or
// "de_DE@euro" to a BCP 47 language tag. The "C" and "POSIX" locales
// map to language.Und.
func Parse(posix string) (language.Tag, error) {
	s := posix
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	switch s {
	case "", "C", "POSIX":
		return language.Und, nil
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, errors.Wrapf(err, "locale %q", posix)
	}
	return tag, nil
}

// Region returns the ISO 3166 alpha-2 code the tag names explicitly.
// Regions only inferred from the language are not returned.
func Region(tag language.Tag) (string, bool) {
	region, confidence := tag.Region()
	if confidence != language.Exact {
		return "", false
	}
	return region.String(), true
}
