package finder

import (
	"sort"
	"strings"
)

// TokenSet is a set of distinct normalized word tokens. The zero value is an
// empty set.
type TokenSet struct {
	tokens map[string]struct{}
	sorted []string
}

// Tokenize splits normalized text on single spaces into a set. Input is
// expected to come from NormalizeText, which guarantees the separator.
func Tokenize(normalized string) TokenSet {
	if normalized == "" {
		return TokenSet{}
	}
	parts := strings.Split(normalized, " ")
	tokens := make(map[string]struct{}, len(parts))
	sorted := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, ok := tokens[p]; ok {
			continue
		}
		tokens[p] = struct{}{}
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)
	return TokenSet{tokens: tokens, sorted: sorted}
}

// TokenizeText is NormalizeText followed by Tokenize.
func TokenizeText(text string) TokenSet {
	return Tokenize(NormalizeText(text))
}

// Len returns the number of distinct tokens.
func (ts TokenSet) Len() int {
	return len(ts.sorted)
}

// Contains reports whether token is a member of the set.
func (ts TokenSet) Contains(token string) bool {
	_, ok := ts.tokens[token]
	return ok
}

// Tokens returns the members in sorted order.
func (ts TokenSet) Tokens() []string {
	return cloneStrings(ts.sorted)
}

// IntersectionSize counts tokens present in both sets.
func (ts TokenSet) IntersectionSize(other TokenSet) int {
	small, large := ts, other
	if small.Len() > large.Len() {
		small, large = large, small
	}
	n := 0
	for _, t := range small.sorted {
		if large.Contains(t) {
			n++
		}
	}
	return n
}

// String joins the sorted tokens with spaces.
func (ts TokenSet) String() string {
	return strings.Join(ts.sorted, " ")
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
