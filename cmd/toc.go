package cmd

import (
	"encoding/json"
	"path/filepath"

	"github.com/itsmostafa/texsplit/internal/report"
	"github.com/itsmostafa/texsplit/internal/texsplit"
	"github.com/spf13/cobra"
)

var tocJSON bool
var tocTree bool

var tocCmd = &cobra.Command{
	Use:   "toc",
	Short: "List the section records recovered from the build",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		records, err := loadRecords(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case tocJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		case tocTree:
			title := filepath.Base(cfg.Main)
			report.FormatOutline(out, title, texsplit.BuildOutline(records))
		default:
			report.FormatRecords(out, records)
		}
		return nil
	},
}

func init() {
	tocCmd.Flags().BoolVar(&tocJSON, "json", false, "Print records as JSON (the --records input format)")
	tocCmd.Flags().BoolVar(&tocTree, "tree", false, "Print the section hierarchy as a tree")
	tocCmd.MarkFlagsMutuallyExclusive("json", "tree")
	addRecordsFlag(tocCmd)

	rootCmd.AddCommand(tocCmd)
}
