package finder

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	getter "github.com/hashicorp/go-getter"
	"go.uber.org/zap"
)

// ResourceLoader fetches a corpus document from a go-getter source (local
// path, http(s), s3, gcs, git …) and parses it.
type ResourceLoader struct {
	// Source is the resource location, e.g. "./qna.json" or
	// "https://example.com/qna.json".
	Source string
	// WorkDir resolves relative paths; defaults to the process working directory.
	WorkDir string
	Logger  *zap.Logger
}

// Load fetches and parses the corpus.
func (l ResourceLoader) Load(ctx context.Context) ([]QuestionEntry, error) {
	src := strings.TrimSpace(l.Source)
	if src == "" {
		return nil, ErrEmptySource
	}
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pwd := l.WorkDir
	if pwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "resolve working directory")
		}
		pwd = wd
	}

	tmp, err := os.MkdirTemp("", "answerfinder-corpus-")
	if err != nil {
		return nil, errors.Wrap(err, "create fetch dir")
	}
	defer os.RemoveAll(tmp)
	dst := filepath.Join(tmp, "corpus.json")

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return nil, errors.Wrapf(err, "fetch corpus %s", src)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, errors.Wrap(err, "read fetched corpus")
	}
	entries, skipped, err := ParseCorpus(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse corpus %s", src)
	}
	if skipped > 0 {
		logger.Warn("skipped malformed corpus entries",
			zap.String(FieldSource, src),
			zap.Int(FieldSkipped, skipped))
	}
	return entries, nil
}
