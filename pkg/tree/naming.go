package tree

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vladocavric/survey-js/pkg/schema"
)

// NamePrefix marks identifiers generated from a title.
const NamePrefix = "FORM_STYLE_DATA."

// BaseName returns the prefixed, upper-cased form of title with every
// character outside A-Z and 0-9 replaced by an underscore. Upper-casing uses
// the full Unicode mapping, so "ß" becomes "SS". Characters outside the Basic
// Multilingual Plane count as two UTF-16 units and yield two underscores.
func BaseName(title string) string {
	upper := cases.Upper(language.Und).String(title)
	var b strings.Builder
	b.Grow(len(NamePrefix) + len(upper))
	b.WriteString(NamePrefix)
	for _, r := range upper {
		switch {
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r > 0xFFFF:
			b.WriteString("__")
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// GenerateUniqueName derives an identifier from title that no element in
// elements uses yet.
func GenerateUniqueName(title string, elements []schema.Element) string {
	return GenerateUniqueNameFunc(title, func(name string) bool {
		return IsNameUsed(name, elements)
	})
}

// GenerateUniqueNameFunc checks used against the base name, then with _1, _2
// and so on until a free candidate is found.
func GenerateUniqueNameFunc(title string, used func(string) bool) string {
	base := BaseName(title)
	if used == nil || !used(base) {
		return base
	}
	for counter := 1; ; counter++ {
		candidate := base + "_" + strconv.Itoa(counter)
		if !used(candidate) {
			return candidate
		}
	}
}

// IsAutoNamed reports whether id was generated by GenerateUniqueName.
func IsAutoNamed(id string) bool {
	return strings.HasPrefix(id, NamePrefix)
}
