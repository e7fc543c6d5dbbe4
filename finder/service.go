package finder

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service answers queries against a corpus handle. Queries issued before the
// corpus resolves see an empty corpus. All query methods are safe for
// concurrent use.
type Service struct {
	corpus *Corpus

	cfgMu  sync.RWMutex
	cfg    Config
	ranker *Ranker
	cache  *lru.Cache[string, []MatchCandidate]

	logger *zap.Logger
}

// NewService constructs a service over corpus. A nil corpus behaves as empty.
func NewService(corpus *Corpus, cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if corpus == nil {
		corpus = StaticCorpus(nil)
	}
	s := &Service{corpus: corpus, logger: logger}
	if err := s.apply(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Corpus returns the handle the service reads from.
func (s *Service) Corpus() *Corpus {
	return s.corpus
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg.Clone()
}

// UpdateConfig replaces the configuration and drops cached results.
func (s *Service) UpdateConfig(cfg Config) error {
	return s.apply(cfg)
}

func (s *Service) apply(cfg Config) error {
	cfg.ApplyDefaults()
	ranker, err := NewRanker(cfg.Locale)
	if err != nil {
		return err
	}
	var cache *lru.Cache[string, []MatchCandidate]
	if cfg.CacheSize > 0 {
		cache, err = lru.New[string, []MatchCandidate](cfg.CacheSize)
		if err != nil {
			return errors.Wrap(err, "create result cache")
		}
	}
	s.cfgMu.Lock()
	s.cfg = cfg
	s.ranker = ranker
	s.cache = cache
	s.cfgMu.Unlock()
	return nil
}

func (s *Service) snapshot() (int, *Ranker, *lru.Cache[string, []MatchCandidate]) {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg.Threshold, s.ranker, s.cache
}

// FindAllMatches returns the matching variants with their scores, best first,
// each variant at most once.
func (s *Service) FindAllMatches(text string) []MatchCandidate {
	threshold, ranker, cache := s.snapshot()
	normalized := NormalizeText(text)

	// Results computed before the corpus resolves must not be cached.
	loaded := s.corpus.Loaded()
	if loaded && cache != nil {
		if hit, ok := cache.Get(normalized); ok {
			return cloneMatches(hit)
		}
	}
	matches := ranker.Sort(s.corpus.Index().Scan(Tokenize(normalized), threshold))
	if loaded && cache != nil {
		cache.Add(normalized, cloneMatches(matches))
	}
	s.logger.Debug("query matched",
		zap.String(FieldQuery, normalized),
		zap.Int(FieldCount, len(matches)))
	return matches
}

// FindBestMatch returns the top-ranked variant, or false when nothing matches.
func (s *Service) FindBestMatch(text string) (string, bool) {
	matches := s.FindAllMatches(text)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Variant, true
}

// GetAnswer returns the ranked variants for text along with text itself.
func (s *Service) GetAnswer(text string) Answer {
	return Answer{
		Answer:       variants(s.FindAllMatches(text)),
		OriginalText: text,
	}
}

// AnswerAll answers texts in parallel and returns results in input order. It
// only fails when ctx is cancelled.
func (s *Service) AnswerAll(ctx context.Context, texts []string) ([]Answer, error) {
	cfg := s.Config()
	out := make([]Answer, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = s.GetAnswer(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func cloneMatches(matches []MatchCandidate) []MatchCandidate {
	out := make([]MatchCandidate, len(matches))
	copy(out, matches)
	return out
}
