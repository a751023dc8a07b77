package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Roman01-info/bmc-v3/internal/analysis"
	"github.com/Roman01-info/bmc-v3/internal/config"
	"github.com/Roman01-info/bmc-v3/internal/history"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataDir    string
	apiKey     string

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bmc",
	Short: "AI analysis for Business Model Canvas plans",
	Long: `bmc turns a nine-block Business Model Canvas into a structured
consultant report in Bengali, powered by the Gemini API.

Run without arguments to start the interactive canvas interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = buildLogger(cmd)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if apiKey != "" {
			cfg.Gemini.APIKey = apiKey
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.NewStore(cfg.HistoryDBPath(), logger)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer store.Close()

		client := analysis.NewClient(cfg.Gemini, logger)
		an := analysis.NewAnalyzer(client, logger)
		return runApp(cfg, store, an, logger)
	},
}

// buildLogger returns a file-backed logger for the interactive interface so
// log lines never corrupt the alternate screen, and a stderr logger for the
// plain subcommands.
func buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if cmd.CalledAs() == "bmc" || cmd.Parent() == nil {
		if !verbose {
			return zap.NewNop(), nil
		}
		zc.OutputPaths = []string{logFilePath()}
		zc.ErrorOutputPaths = []string{logFilePath()}
	}
	return zc.Build()
}

func logFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bmc.log"
	}
	dir := home + "/.bmc"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "bmc.log"
	}
	return dir + "/bmc.log"
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.bmc/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory for history storage")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY env)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
