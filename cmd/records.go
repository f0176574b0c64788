package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/itsmostafa/texsplit/internal/config"
	"github.com/itsmostafa/texsplit/internal/texmeta"
	"github.com/itsmostafa/texsplit/internal/texsplit"
	"github.com/spf13/cobra"
)

// recordsFile is shared by every command that consumes section records.
var recordsFile string

func addRecordsFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&recordsFile, "records", "", "Read section records from a JSON file instead of the build's aux files")
}

// loadRecords reads records from --records when given, otherwise from the
// .toc/.secid/.aux files named in cfg.
func loadRecords(cfg config.Config) ([]texsplit.Record, error) {
	if recordsFile != "" {
		return readRecordsFile(recordsFile)
	}

	records, err := texmeta.Process(cfg.Root, texmeta.Files{
		TOC:   cfg.TOC,
		SecID: cfg.SecID,
		Aux:   cfg.Aux,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read build files in %s: %w", cfg.Root, err)
	}
	slog.Debug("records loaded", "component", "cmd", "source", cfg.TOC, "records", len(records))
	return records, nil
}

func readRecordsFile(path string) ([]texsplit.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	var records []texsplit.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records %s: %w", path, err)
	}
	return records, nil
}
