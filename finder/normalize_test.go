package finder

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"punctuation and case", "  Hello,   WORLD!! ", "hello world"},
		{"only punctuation", "?!... ---", ""},
		{"tabs and newlines", "what\tis\n\nthis", "what is this"},
		{"cyrillic", "Ответ не найден!", "ответ не найден"},
		{"emoji between words", "Hello 👋 world", "hello world"},
		{"emoji inside word", "Hello👋world", "helloworld"},
		{"digits kept", "Q3 2024: results", "q3 2024 results"},
		{"full case folding", "STRASSE Straße", "strasse strasse"},
		{"dotted capital i", "İstanbul", "istanbul"},
		{"unicode spaces", "a\u00a0b\u3000c", "a b c"},
		{"decomposed accent", "Cafe\u0301", "caf\u00e9"},
		{"hangul jamo across punctuation", "\u1100!\u1161", "\uac00"},
		{"cherokee small letter", "\uab70x", "\u13a0x"},
		{"cherokee capital letter", "\u13a0x", "\u13a0x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"  Hello,   WORLD!! ",
		"İİİ ǅ ß ﬁ Σίσυφος",
		"What is the capital of france?",
		"é́ x̧",
		"中文，测试。 日本語のテキスト",
		"1½ ⅔ ٣٤",
		"\u200b\ufeffzero\u200bwidth",
		"\u1100!\u1161",
		"\uac00-\u11a8",
		"\u13a0\u13f8 \uab70\uabbf",
	}
	for _, in := range inputs {
		once := NormalizeText(in)
		assert.Equal(t, once, NormalizeText(once), "input %q", in)
	}
}

func TestNormalizeTextIdempotentAllRunes(t *testing.T) {
	if testing.Short() {
		t.Skip("sweeps every code point")
	}
	failures := 0
	for r := rune(0); r <= utf8.MaxRune; r++ {
		if !utf8.ValidRune(r) {
			continue
		}
		in := string(r) + "x"
		once := NormalizeText(in)
		if twice := NormalizeText(once); twice != once {
			failures++
			if failures <= 10 {
				t.Errorf("U+%04X: once=%q twice=%q", r, once, twice)
			}
		}
	}
	assert.Zero(t, failures)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Who wrote Hamlet?", CleanText("\n\tWho  wrote\n Hamlet?  "))
	assert.Equal(t, "", CleanText(" \r\n\t "))
}
