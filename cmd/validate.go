package cmd

import (
	"github.com/itsmostafa/texsplit/internal/report"
	"github.com/itsmostafa/texsplit/internal/texsplit"
	"github.com/spf13/cobra"
)

var validateSubsections bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report sections whose nested content lives in another file",
	Long: `Check the section structure without writing anything. A warning means a
chapter or section would lose nested content when split, because that content
sits in a different source file. Warnings are advisory and do not change the
exit status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("subsections") {
			cfg.IncludeSubsections = validateSubsections
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		records, err := loadRecords(cfg)
		if err != nil {
			return err
		}

		report.FormatIssues(cmd.OutOrStdout(), texsplit.ValidateRecords(records, cfg.IncludeSubsections))
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateSubsections, "subsections", false, "Validate as if subsections were split too")
	addRecordsFlag(validateCmd)

	rootCmd.AddCommand(validateCmd)
}
