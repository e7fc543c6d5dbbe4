package finder

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var (
	// ErrEmptySource is returned when no corpus location is configured.
	ErrEmptySource = errors.New("corpus source is empty")
	// ErrCorpusNotArray is returned when the corpus document is not a JSON array.
	ErrCorpusNotArray = errors.New("corpus must be a JSON array")
)

// ParseCorpus decodes a JSON array of {"question", "variant"} objects.
// Elements that are not objects or lack either string field are skipped and
// counted; a document that is not a JSON array is an error.
func ParseCorpus(data []byte) ([]QuestionEntry, int, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\ufeff")))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, 0, ErrCorpusNotArray
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, 0, errors.Wrap(err, "decode corpus")
	}
	entries := make([]QuestionEntry, 0, len(raw))
	skipped := 0
	for _, item := range raw {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			skipped++
			continue
		}
		question, okQ := fields["question"].(string)
		variant, okV := fields["variant"].(string)
		if !okQ || !okV {
			skipped++
			continue
		}
		entries = append(entries, QuestionEntry{Question: question, Variant: variant})
	}
	return entries, skipped, nil
}

// Loader produces the corpus. Implementations validate entries before
// returning them.
type Loader interface {
	Load(ctx context.Context) ([]QuestionEntry, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) ([]QuestionEntry, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) ([]QuestionEntry, error) {
	return f(ctx)
}

// Corpus is a one-shot handle to the corpus. Until it is resolved it reads as
// an empty corpus; once resolved it never changes. The zero value is an
// unresolved handle. A nil *Corpus is an empty corpus that never loads; its
// Ready channel is closed and Wait returns immediately.
type Corpus struct {
	idx       atomic.Pointer[CorpusIndex]
	once      sync.Once
	readyOnce sync.Once
	ready     chan struct{}
}

var (
	emptyIndex  = BuildIndex(nil)
	closedReady = func() chan struct{} {
		ch := make(chan struct{})
		close(ch)
		return ch
	}()
)

// NewCorpus returns an unresolved handle.
func NewCorpus() *Corpus {
	return &Corpus{}
}

func (c *Corpus) readyChan() chan struct{} {
	c.readyOnce.Do(func() {
		c.ready = make(chan struct{})
	})
	return c.ready
}

// StaticCorpus returns a handle already resolved with entries.
func StaticCorpus(entries []QuestionEntry) *Corpus {
	c := NewCorpus()
	c.Resolve(entries)
	return c
}

// Resolve indexes entries and publishes them. Only the first call has an
// effect; it reports whether this call resolved the handle.
func (c *Corpus) Resolve(entries []QuestionEntry) bool {
	if c == nil {
		return false
	}
	resolved := false
	c.once.Do(func() {
		c.idx.Store(BuildIndex(entries))
		close(c.readyChan())
		resolved = true
	})
	return resolved
}

// Index returns the current index without blocking.
func (c *Corpus) Index() *CorpusIndex {
	if c == nil {
		return emptyIndex
	}
	if idx := c.idx.Load(); idx != nil {
		return idx
	}
	return emptyIndex
}

// Loaded reports whether the handle has been resolved.
func (c *Corpus) Loaded() bool {
	return c != nil && c.idx.Load() != nil
}

// Ready is closed once the handle is resolved.
func (c *Corpus) Ready() <-chan struct{} {
	if c == nil {
		return closedReady
	}
	return c.readyChan()
}

// Wait blocks until the handle is resolved or ctx is done.
func (c *Corpus) Wait(ctx context.Context) error {
	select {
	case <-c.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LoadAsync starts loading in the background and returns immediately. A load
// failure is logged and resolves the handle with an empty corpus.
func LoadAsync(ctx context.Context, loader Loader, logger *zap.Logger) *Corpus {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := NewCorpus()
	go func() {
		start := time.Now()
		entries, err := loader.Load(ctx)
		if err != nil {
			logger.Warn("corpus load failed; continuing with empty corpus",
				zap.String(FieldComponent, "corpus"),
				zap.Error(err))
			c.Resolve(nil)
			return
		}
		c.Resolve(entries)
		idx := c.Index()
		logger.Info("corpus loaded",
			zap.String(FieldComponent, "corpus"),
			zap.Int(FieldCount, idx.Size()),
			zap.Uint64(FieldDigest, idx.Digest()),
			zap.Int64(FieldDurationMS, time.Since(start).Milliseconds()))
	}()
	return c
}

// Log field names shared by the package.
const (
	FieldComponent  = "component"
	FieldCount      = "count"
	FieldSkipped    = "skipped"
	FieldSource     = "source"
	FieldDigest     = "digest"
	FieldDurationMS = "duration_ms"
	FieldQuery      = "query"
)
