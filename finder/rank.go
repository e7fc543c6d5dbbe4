package finder

import (
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ranker orders candidates by score (descending) and variant (ascending under
// the locale's collation), then drops repeated variants. It is safe for
// concurrent use.
type Ranker struct {
	tag  language.Tag
	pool sync.Pool
}

var defaultRanker = mustRanker("und")

// NewRanker builds a ranker for a BCP-47 locale. "und" selects the root
// collation.
func NewRanker(locale string) (*Ranker, error) {
	if locale == "" {
		locale = "und"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, errors.Wrapf(err, "parse locale %q", locale)
	}
	r := &Ranker{tag: tag}
	// collate.Collator keeps iteration buffers and must not be shared.
	r.pool.New = func() any { return collate.New(tag) }
	return r, nil
}

func mustRanker(locale string) *Ranker {
	r, err := NewRanker(locale)
	if err != nil {
		panic(err)
	}
	return r
}

// Locale returns the collation locale.
func (r *Ranker) Locale() string {
	return r.tag.String()
}

// Compare orders two variants. Collation-equal strings fall back to byte order
// so the result is total.
func (r *Ranker) Compare(a, b string) int {
	c := r.pool.Get().(*collate.Collator)
	defer r.pool.Put(c)
	return compareVariants(c, a, b)
}

func compareVariants(c *collate.Collator, a, b string) int {
	if cmp := c.CompareString(a, b); cmp != 0 {
		return cmp
	}
	return strings.Compare(a, b)
}

// Sort returns the candidates sorted and deduplicated by variant. The first,
// best-ranked occurrence of each variant is kept. The input is not modified.
func (r *Ranker) Sort(candidates []MatchCandidate) []MatchCandidate {
	if len(candidates) == 0 {
		return []MatchCandidate{}
	}
	sorted := make([]MatchCandidate, len(candidates))
	copy(sorted, candidates)

	c := r.pool.Get().(*collate.Collator)
	defer r.pool.Put(c)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return compareVariants(c, sorted[i].Variant, sorted[j].Variant) < 0
	})

	seen := make(map[string]struct{}, len(sorted))
	out := sorted[:0]
	for _, m := range sorted {
		if _, ok := seen[m.Variant]; ok {
			continue
		}
		seen[m.Variant] = struct{}{}
		out = append(out, m)
	}
	return out
}

// Rank returns the variants of the sorted, deduplicated candidates.
func (r *Ranker) Rank(candidates []MatchCandidate) []string {
	return variants(r.Sort(candidates))
}

// Rank ranks candidates with the root collation.
func Rank(candidates []MatchCandidate) []string {
	return defaultRanker.Rank(candidates)
}

func variants(matches []MatchCandidate) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Variant
	}
	return out
}
