package finder

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// maxNormalizePasses bounds the fixed-point loop in NormalizeText. Real input
// settles after the second pass.
const maxNormalizePasses = 4

// NormalizeText canonicalizes text for comparison: it composes the input (NFC),
// applies full Unicode case folding, drops everything that is not a letter,
// a number or whitespace, collapses whitespace runs into single spaces and
// composes again. The pipeline is repeated until the output stops changing,
// so NormalizeText(NormalizeText(s)) == NormalizeText(s).
func NormalizeText(text string) string {
	out := normalizePass(text)
	for i := 1; i < maxNormalizePasses; i++ {
		next := normalizePass(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func normalizePass(text string) string {
	if text == "" {
		return ""
	}
	// Folding runs before the filter since it can emit combining marks
	// (U+0130 folds to "i" + U+0307).
	// cases.Caser keeps state, so one is built per call.
	folded := cases.Fold().String(norm.NFC.String(text))
	kept := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return stableFold(r)
		}
		return -1
	}, folded)
	fields := strings.Fields(kept)
	if len(fields) == 0 {
		return ""
	}
	// Removing punctuation can make letters adjacent that compose
	// (Hangul jamo in "ᄀ!ᅡ").
	return norm.NFC.String(strings.Join(fields, " "))
}

// stableFold maps Cherokee small letters to their capital forms, which is the
// Unicode case-folding target. cases.Fold alternates between the two.
func stableFold(r rune) rune {
	switch {
	case r >= 0xAB70 && r <= 0xABBF:
		return r - 0xAB70 + 0x13A0
	case r >= 0x13F8 && r <= 0x13FD:
		return r - 8
	}
	return r
}

// CleanText flattens tabs and newlines and collapses whitespace without
// touching punctuation or case. It prepares raw captured text (for example a
// selected element's content) before it is handed to the matcher.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
