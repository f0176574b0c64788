package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/itsmostafa/texsplit/internal/deps"
	"github.com/itsmostafa/texsplit/internal/report"
	"github.com/spf13/cobra"
)

var mainFile string
var depsJSON bool
var depsFiles bool

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Show the include graph of the project",
	Long: `Walk \input and \include from the main file and list every source file,
package, class and bibliography the build references. Missing source files
are flagged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("main") {
			cfg.Main = mainFile
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		collector := deps.NewCollector(cfg.Root, deps.CollectorConfig{
			Extension: cfg.Extension,
			Logger:    slog.Default(),
		})
		out := cmd.OutOrStdout()

		if depsFiles {
			files, err := collector.Files(cfg.Main)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(out, f)
			}
			return nil
		}

		all, err := collector.Collect(cfg.Main)
		if err != nil {
			return err
		}
		if depsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(all)
		}

		report.FormatDeps(out, path.Clean(filepath.ToSlash(cfg.Main)), deps.Group(all))
		report.FormatDepsSummary(out, all)
		return nil
	},
}

func init() {
	depsCmd.Flags().StringVar(&mainFile, "main", "main.tex", "Main document, relative to the project root")
	depsCmd.Flags().BoolVar(&depsJSON, "json", false, "Print dependencies as JSON")
	depsCmd.Flags().BoolVar(&depsFiles, "files", false, "Print only the project files the build reads")
	depsCmd.MarkFlagsMutuallyExclusive("json", "files")

	rootCmd.AddCommand(depsCmd)
}
