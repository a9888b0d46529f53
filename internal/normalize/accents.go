package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Ligatures and stroked letters have no decomposition, so they are spelled
// out before folding.
var ligatures = strings.NewReplacer(
	"Œ", "OE", "œ", "oe",
	"Æ", "AE", "æ", "ae",
	"ß", "ss",
	"Ø", "O", "ø", "o",
	"Ł", "L", "ł", "l",
	"Đ", "D", "đ", "d",
	"Ð", "D", "ð", "d",
	"Ħ", "H", "ħ", "h",
	"Þ", "Th", "þ", "th",
	"ı", "i",
)

// FoldAccents strips diacritics ("Société Générale" -> "Societe Generale").
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, ligatures.Replace(s))
	if err != nil {
		return s
	}
	return folded
}
