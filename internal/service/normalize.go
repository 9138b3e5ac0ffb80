package service

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var dashReplacer = strings.NewReplacer(
	"−", "-", // minus sign
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"–", "-", // en dash
	"—", "-", // em dash
	"―", "-", // horizontal bar
)

var (
	// 3番25号, 3番地25, 3番地の25, 3の25, 3ー25
	numberSeparator = regexp.MustCompile(`([0-9])(?:番地の|番の|番地|番|号|の|ー)([0-9])`)
	// 25号, 3番地 at the end of the text or before a space or punctuation.
	// 3号室 and 5号棟 keep their suffix.
	numberSuffix = regexp.MustCompile(`([0-9])(?:番地|番|号)($|[\s\p{P}])`)
)

// NormalizeResidual rewrites the residual address text into the dash-separated
// form the finder expects: full-width characters are folded, dash look-alikes
// become "-", and 番地/番/号 separators between numbers become "-".
func NormalizeResidual(s string) string {
	s = width.Fold.String(s)
	s = dashReplacer.Replace(s)
	// Two passes because adjacent separators share a digit ("1番2号3").
	for i := 0; i < 2; i++ {
		s = numberSeparator.ReplaceAllString(s, "$1-$2")
	}
	return numberSuffix.ReplaceAllString(s, "$1$2")
}
