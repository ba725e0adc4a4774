// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// regexp's \s only knows ASCII blanks, so every other space (NBSP from
// "&nbsp;", vertical tab, ideographic space) becomes a plain one.
var foldSpaces = runes.Map(func(r rune) rune {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return r
	}

	if unicode.IsSpace(r) {
		return ' '
	}

	return r
})

// foldWidth maps fullwidth digits and punctuation ("２５．４１") to their ASCII
// counterparts.
func foldWidth(s string) string {
	s, _, _ = transform.String(transform.Chain(width.Fold, foldSpaces), s)

	return s
}

// foldText removes accents and folds widths, so "Longitúd：２５" reads as
// "Longitud:25".
func foldText(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			width.Fold,
			foldSpaces,
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		s,
	)

	return s
}
