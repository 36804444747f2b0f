package processor

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
)

// Batch runs a Processor over every workflow file in a directory.
type Batch struct {
	processor *Processor
	pattern   string
	logger    *log.Logger
}

// NewBatch creates a Batch matching files against pattern, a filepath.Match
// glob such as "*.json".
func NewBatch(p *Processor, pattern string, logger *log.Logger) *Batch {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Batch{processor: p, pattern: pattern, logger: logger}
}

// Discover lists the matching files in dir, sorted by name. The list is
// taken once; files created while the batch runs are not picked up.
func (b *Batch) Discover(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, b.pattern))
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", b.pattern, err)
	}
	sort.Strings(files)
	return files, nil
}

// Run processes every matching file in order and returns one summary per
// file. An empty result with a nil error means nothing matched.
func (b *Batch) Run(dir string) ([]Summary, error) {
	files, err := b.Discover(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		b.logger.Printf("warning: no JSON files found in %s", dir)
		return nil, nil
	}

	b.logger.Printf("found %d workflow files to enhance", len(files))

	summaries := make([]Summary, 0, len(files))
	for _, f := range files {
		summaries = append(summaries, b.processor.Process(f))
	}
	return summaries, nil
}
