package finder

import (
	"github.com/cespare/xxhash/v2"
)

type indexedEntry struct {
	entry  QuestionEntry
	tokens TokenSet
}

// CorpusIndex is an immutable, pre-tokenized corpus. A nil *CorpusIndex is a
// valid empty corpus.
type CorpusIndex struct {
	items  []indexedEntry
	digest uint64
}

// BuildIndex tokenizes every question once. The entries slice is copied.
func BuildIndex(entries []QuestionEntry) *CorpusIndex {
	idx := &CorpusIndex{items: make([]indexedEntry, len(entries))}
	h := xxhash.New()
	for i, e := range entries {
		idx.items[i] = indexedEntry{entry: e, tokens: TokenizeText(e.Question)}
		_, _ = h.WriteString(e.Question)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(e.Variant)
		_, _ = h.Write([]byte{0})
	}
	idx.digest = h.Sum64()
	return idx
}

// Size returns the number of entries.
func (idx *CorpusIndex) Size() int {
	if idx == nil {
		return 0
	}
	return len(idx.items)
}

// Digest fingerprints the corpus contents and order.
func (idx *CorpusIndex) Digest() uint64 {
	if idx == nil {
		return xxhash.Sum64(nil)
	}
	return idx.digest
}

// Entries returns a copy of the indexed entries in corpus order.
func (idx *CorpusIndex) Entries() []QuestionEntry {
	if idx == nil {
		return nil
	}
	out := make([]QuestionEntry, len(idx.items))
	for i, it := range idx.items {
		out[i] = it.entry
	}
	return out
}

// Scan scores every entry against query in corpus order and keeps those scoring
// strictly above threshold. The result is unranked and may repeat variants.
func (idx *CorpusIndex) Scan(query TokenSet, threshold int) []MatchCandidate {
	if idx.Size() == 0 {
		return nil
	}
	var out []MatchCandidate
	for _, it := range idx.items {
		score := Score(query, it.tokens)
		if score > threshold {
			out = append(out, MatchCandidate{Variant: it.entry.Variant, Score: score})
		}
	}
	return out
}

// FindAllMatches runs the whole pipeline against an ad-hoc corpus using the
// default collation: normalize, tokenize, scan, rank and deduplicate.
func FindAllMatches(query string, corpus []QuestionEntry, threshold int) []MatchCandidate {
	return defaultRanker.Sort(BuildIndex(corpus).Scan(TokenizeText(query), threshold))
}
