package finder

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, corpus *Corpus) *Service {
	t.Helper()
	s, err := NewService(corpus, DefaultConfig(), nil)
	require.NoError(t, err)
	return s
}

func TestGetAnswerEndToEnd(t *testing.T) {
	s := newTestService(t, StaticCorpus(sampleCorpus()))
	got := s.GetAnswer("what is the capital of France")
	assert.Equal(t, Answer{Answer: []string{"Paris"}, OriginalText: "what is the capital of France"}, got)
}

func TestGetAnswerTieBreakByVariant(t *testing.T) {
	s := newTestService(t, StaticCorpus([]QuestionEntry{
		{Question: "Pick a code word", Variant: "Zulu"},
		{Question: "Pick a code word", Variant: "Alpha"},
	}))
	assert.Equal(t, []string{"Alpha", "Zulu"}, s.GetAnswer("Pick a code word").Answer)
}

func TestGetAnswerEmptyCorpus(t *testing.T) {
	corpora := map[string]*Corpus{
		"nil":        nil,
		"unresolved": NewCorpus(),
		"empty":      StaticCorpus(nil),
	}
	for name, corpus := range corpora {
		t.Run(name, func(t *testing.T) {
			s := newTestService(t, corpus)
			for _, q := range []string{"", "   ", "What is the capital of France", "!!!"} {
				got := s.GetAnswer(q)
				assert.NotNil(t, got.Answer)
				assert.Empty(t, got.Answer)
				assert.Equal(t, q, got.OriginalText)
			}
		})
	}
}

func TestGetAnswerPunctuationOnlyQuery(t *testing.T) {
	s := newTestService(t, StaticCorpus(sampleCorpus()))
	got := s.GetAnswer("?!...")
	assert.Empty(t, got.Answer)
	assert.Equal(t, "?!...", got.OriginalText)
}

func TestFindBestMatch(t *testing.T) {
	s := newTestService(t, StaticCorpus(sampleCorpus()))

	best, ok := s.FindBestMatch("Who wrote Hamlet?")
	assert.True(t, ok)
	assert.Equal(t, "Shakespeare", best)

	best, ok = s.FindBestMatch("completely unrelated words")
	assert.False(t, ok)
	assert.Empty(t, best)
}

func TestResultsBeforeLoadAreNotCached(t *testing.T) {
	corpus := NewCorpus()
	s := newTestService(t, corpus)
	query := "what is the capital of France"

	assert.Empty(t, s.GetAnswer(query).Answer)
	corpus.Resolve(sampleCorpus())
	assert.Equal(t, []string{"Paris"}, s.GetAnswer(query).Answer)
}

func TestCachedResultsAreCopies(t *testing.T) {
	s := newTestService(t, StaticCorpus(sampleCorpus()))
	first := s.FindAllMatches("Who wrote Hamlet")
	require.Len(t, first, 1)
	first[0].Variant = "mutated"

	second := s.FindAllMatches("who wrote hamlet!")
	assert.Equal(t, []MatchCandidate{{Variant: "Shakespeare", Score: 100}}, second)
}

func TestUpdateConfigAppliesThreshold(t *testing.T) {
	s := newTestService(t, StaticCorpus(sampleCorpus()))
	// Shares 3 of 6 tokens with the France questions: score 50.
	query := "capital of France"

	cfg := s.Config()
	cfg.Threshold = 40
	require.NoError(t, s.UpdateConfig(cfg))
	assert.Equal(t, []MatchCandidate{{Variant: "Paris", Score: 50}}, s.FindAllMatches(query))

	cfg.Threshold = 50
	require.NoError(t, s.UpdateConfig(cfg))
	assert.Empty(t, s.FindAllMatches(query))
	assert.Equal(t, 50, s.Config().Threshold)
}

func TestUpdateConfigInvalidLocale(t *testing.T) {
	s := newTestService(t, nil)
	cfg := s.Config()
	cfg.Locale = "not a locale!!"
	assert.Error(t, s.UpdateConfig(cfg))
	assert.Equal(t, "und", s.Config().Locale)
}

func TestNewServiceInvalidLocale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Locale = "not a locale!!"
	_, err := NewService(nil, cfg, nil)
	assert.Error(t, err)
}

func TestServiceWithoutCache(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheSize = 0
	s, err := NewService(StaticCorpus(sampleCorpus()), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris"}, s.GetAnswer("What is the capital of France").Answer)
	assert.Equal(t, []string{"Paris"}, s.GetAnswer("What is the capital of France").Answer)
}

func TestConcurrentQueries(t *testing.T) {
	s := newTestService(t, StaticCorpus(sampleCorpus()))
	queries := map[string][]string{
		"what is the capital of France": {"Paris"},
		"Who wrote Hamlet":              {"Shakespeare"},
		"nothing to see":                {},
	}
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		for q, want := range queries {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Equal(t, want, s.GetAnswer(q).Answer)
			}()
		}
	}
	wg.Wait()
}

func TestAnswerAllPreservesOrder(t *testing.T) {
	s := newTestService(t, StaticCorpus(sampleCorpus()))
	texts := make([]string, 0, 30)
	for i := 0; i < 10; i++ {
		texts = append(texts, "Who wrote Hamlet", fmt.Sprintf("noise %d", i), "what is the capital of France")
	}
	answers, err := s.AnswerAll(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, answers, len(texts))
	for i, a := range answers {
		assert.Equal(t, texts[i], a.OriginalText)
		switch i % 3 {
		case 0:
			assert.Equal(t, []string{"Shakespeare"}, a.Answer)
		case 1:
			assert.Empty(t, a.Answer)
		case 2:
			assert.Equal(t, []string{"Paris"}, a.Answer)
		}
	}
}

func TestAnswerAllCancelled(t *testing.T) {
	s := newTestService(t, StaticCorpus(sampleCorpus()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.AnswerAll(ctx, []string{"Who wrote Hamlet"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnswerAllEmpty(t *testing.T) {
	s := newTestService(t, nil)
	answers, err := s.AnswerAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, answers)
}
