package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/itsmostafa/texsplit/internal/config"
	"github.com/itsmostafa/texsplit/internal/report"
	"github.com/itsmostafa/texsplit/internal/version"
	"github.com/spf13/cobra"
)

var rootDir string
var configPath string
var verbose bool
var logJSON bool

var rootCmd = &cobra.Command{
	Use:   "texsplit",
	Short: "Split a multi-file LaTeX project into one file per section",
	Long: `texsplit reads the auxiliary files of a LaTeX build (.toc, .aux and the
.secid position file) and writes one self-contained source file per chapter
or section, with \input directives inlined.

Settings come from texsplit.yaml in the project root, TEXSPLIT_* environment
variables and flags, in increasing order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("texsplit %s\n", version.String()))

	// Project root flag with env var fallback
	defaultRoot := "."
	if envRoot := os.Getenv("TEXSPLIT_ROOT"); envRoot != "" {
		defaultRoot = envRoot
	}
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", defaultRoot, "LaTeX project root directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default <root>/"+config.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
}

// setupLogger installs the default slog logger on w. Text logs show errors
// only unless --verbose is set; JSON logs start at info.
func setupLogger(w io.Writer) {
	level := slog.LevelError
	switch {
	case verbose:
		level = slog.LevelDebug
	case logJSON:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if logJSON {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadConfig resolves settings for cmd: defaults, project file, environment,
// then any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(rootDir, configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("root") {
		cfg.Root = rootDir
	}
	return cfg, nil
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		report.FormatError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
