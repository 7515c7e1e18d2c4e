package validation

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Email recorta y pasa a minúsculas; el índice único de users depende de esta forma.
func Email(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Category recorta y pasa a minúsculas.
func Category(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Text recorta y normaliza a NFC para que las búsquedas por substring sean estables.
func Text(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
