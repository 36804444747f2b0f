package commands

import (
	"fmt"
	"log"
	"os"

	"n8nharden/internal/config"
	"n8nharden/internal/processor"
	"n8nharden/internal/report"
	"n8nharden/internal/ui"
)

// newLogger is the logger handed to the processor and batch, overridable in tests.
var newLogger = func() *log.Logger {
	return log.New(os.Stderr, "[n8nharden] ", log.LstdFlags)
}

// RunEnhance enhances every workflow in the configured directory, writes the
// report and prints it. A missing directory is the only fatal outcome; an
// empty directory logs and returns without a report.
func RunEnhance() error {
	cfg, err := config.Load()
	if err != nil {
		ui.ShowError("Failed to load configuration", err)
		return err
	}
	return runEnhance(cfg, newLogger())
}

func runEnhance(cfg *config.Config, logger *log.Logger) error {
	if err := cfg.CheckWorkflowsDir(); err != nil {
		logger.Printf("error: %v", err)
		return err
	}

	batch := processor.NewBatch(processor.NewProcessor(logger), cfg.Pattern, logger)
	summaries, err := batch.Run(cfg.WorkflowsDir)
	if err != nil {
		logger.Printf("error: %v", err)
		return err
	}
	if len(summaries) == 0 {
		logger.Printf("error: no workflows were enhanced")
		return nil
	}

	content, err := report.Write(cfg.ReportPath, summaries)
	if err != nil {
		logger.Printf("error: %v", err)
		return err
	}
	logger.Printf("enhancement complete, report saved to %s", cfg.ReportPath)

	fmt.Println(ui.RenderMarkdown(content))
	ui.ShowInfo("Report saved to %s", cfg.ReportPath)

	failed := 0
	for _, s := range summaries {
		if s.Failed() {
			failed++
		}
	}
	if failed > 0 {
		ui.ShowWarning("%d of %d workflows could not be enhanced", failed, len(summaries))
	} else {
		ui.ShowSuccess("Enhanced %d workflows", len(summaries))
	}
	return nil
}
