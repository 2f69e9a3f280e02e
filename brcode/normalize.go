package brcode

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText remove acentos e descarta caracteres fora do ASCII
// imprimível, para que nome e cidade ocupem um byte por caractere.
// Ex.: "São Paulo" -> "Sao Paulo".
func NormalizeText(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return r < 0x20 || r > 0x7E
		})),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(out)
}
