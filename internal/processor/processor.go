// Package processor enhances workflow files one at a time and collects a
// summary of the changes made to each.
package processor

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"n8nharden/internal/enhance"
	"n8nharden/internal/workflow"
)

// Processor enhances a single workflow file.
type Processor struct {
	logger *log.Logger
}

// NewProcessor creates a Processor. A nil logger discards output.
func NewProcessor(logger *log.Logger) *Processor {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Processor{logger: logger}
}

// Process loads the workflow at path, enhances every HTTP Request node,
// appends the auxiliary error nodes when at least one was found and writes
// the result back over the original file.
//
// Failures never escape: they are returned as a summary carrying the error
// message. Running Process twice on the same file appends a second pair of
// auxiliary nodes with the same ids.
func (p *Processor) Process(path string) Summary {
	p.logger.Printf("enhancing workflow: %s", path)

	summary, err := p.process(path)
	if err != nil {
		p.logger.Printf("error: enhancing workflow %s: %v", path, err)
		return Summary{File: filepath.Base(path), Error: err.Error()}
	}

	p.logger.Printf("enhanced %d HTTP nodes in %s", summary.HTTPNodesEnhanced, path)
	return summary
}

func (p *Processor) process(path string) (Summary, error) {
	doc, err := workflow.Load(path)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{File: filepath.Base(path)}
	nodes := doc.Nodes()
	for i, n := range nodes {
		ok, err := enhance.HTTPNode(n)
		if err != nil {
			return Summary{}, fmt.Errorf("enhance node %d: %w", i, err)
		}
		if !ok {
			continue
		}
		if err := doc.SetNode(i, n); err != nil {
			return Summary{}, err
		}
		summary.record(n)
	}

	if enhance.NeedsAuxiliary(nodes) {
		for _, aux := range enhance.AuxiliaryNodes() {
			raw, err := aux.Encode()
			if err != nil {
				return Summary{}, fmt.Errorf("encode %s: %w", aux.Name, err)
			}
			if err := doc.AppendNode(raw); err != nil {
				return Summary{}, err
			}
			summary.ErrorNodesAdded++
		}
	}

	if err := doc.Save(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}
