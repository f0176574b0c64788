package cmd

import (
	"log/slog"

	"github.com/itsmostafa/texsplit/internal/manifest"
	"github.com/itsmostafa/texsplit/internal/report"
	"github.com/itsmostafa/texsplit/internal/texsplit"
	"github.com/spf13/cobra"
)

var outputDir string
var includeSubsections bool
var noValidate bool
var manifestPath string

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Write one file per chapter and section",
	Long: `Split the project into one file per chapter and section. Each file holds
the section's lines from its source file, with \input directives inlined.
Subsections stay inside their section unless --subsections is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("output") {
			cfg.Output = outputDir
		}
		if cmd.Flags().Changed("subsections") {
			cfg.IncludeSubsections = includeSubsections
		}
		if cmd.Flags().Changed("no-validate") {
			cfg.RunValidation = !noValidate
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		records, err := loadRecords(cfg)
		if err != nil {
			return err
		}

		logger := slog.Default()
		extractor := texsplit.NewExtractor(cfg.Root, texsplit.ExtractorConfig{
			Extension:     cfg.Extension,
			MaxInputDepth: cfg.MaxInputDepth,
			Logger:        logger,
		})
		splitter := texsplit.NewSplitter(extractor, logger)

		out := cmd.OutOrStdout()
		report.FormatHeader(out, cfg.Root, cfg.Output, len(records))

		result, err := splitter.Split(cmd.Context(), records, cfg.Output, texsplit.SplitOptions{
			IncludeSubsections: cfg.IncludeSubsections,
			Validate:           cfg.RunValidation,
		})
		if err != nil {
			return err
		}

		if cfg.RunValidation {
			report.FormatIssues(out, result.Issues)
		}
		report.FormatOutputs(out, result.Outputs)
		report.FormatSummary(out, result, cfg.Output)

		if manifestPath != "" {
			return manifest.Save(manifestPath, manifest.New(cfg.Root, cfg.Output, result))
		}
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVarP(&outputDir, "output", "o", "output", "Directory for the section files")
	splitCmd.Flags().BoolVar(&includeSubsections, "subsections", false, "Write subsections to their own files")
	splitCmd.Flags().BoolVar(&noValidate, "no-validate", false, "Skip the structural validation")
	splitCmd.Flags().StringVar(&manifestPath, "manifest", "", "Write a JSON manifest of the run to this path")
	addRecordsFlag(splitCmd)

	rootCmd.AddCommand(splitCmd)
}
