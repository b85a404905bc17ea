package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Translator returns country names in one language. It implements
// schema.Translator.
type Translator struct {
	namer display.Namer
	// passthrough keeps the English iso-codes names
	passthrough bool
}

// NewTranslator returns a Translator for tag. English and undetermined
// tags keep the names found in the ISO 3166 list.
func NewTranslator(tag language.Tag) *Translator {
	base, _ := tag.Base()
	t := &Translator{passthrough: tag == language.Und || base.String() == "en"}
	if !t.passthrough {
		t.namer = display.Regions(tag)
	}
	return t
}

// Translate returns the localized name of the country with the given
// alpha-2 code, or name if no translation is known.
func (t *Translator) Translate(code, name string) string {
	if t.passthrough || t.namer == nil {
		return name
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return name
	}
	if translated := t.namer.Name(region); translated != "" {
		return translated
	}
	return name
}
