// Package root contains the root command for the application
package root

import (
	"fmt"
	"io"
	"os"

	"fjacquet/portfolio-report/internal/config"
	"fjacquet/portfolio-report/internal/container"
	"fjacquet/portfolio-report/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input        string
	Output       string
	ConfigFile   string
	LogLevel     string
	CSVDelimiter string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppContainer holds the dependencies built from the loaded configuration.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "portfolio-report",
		Short: "A CLI tool to normalize portfolio exports and report on them.",
		Long: `portfolio-report reads the JSON export of a wealth-management system,
normalizes its sections into a canonical model and renders summaries,
exposure matrices and filtered transaction listings.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to portfolio-report!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.Warnf("Failed to close container: %v", err)
			}
		},
		SilenceUsage: true,
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Portfolio export (JSON); defaults to input.path from the configuration")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: standard output)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Configuration file (default: search for config.yaml)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.CSVDelimiter, "csv-delimiter", "", "CSV delimiter override")
}

func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.LoadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.CSVDelimiter != "" {
		cfg.CSV.Delimiter = SharedFlags.CSVDelimiter
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	AppContainer, err = container.NewContainerWithLogger(cfg, logging.NewLogrusAdapterFromLogger(Log))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	return nil
}

// InputPath returns the document to load: the --input flag, else the
// configured default.
func InputPath() string {
	if SharedFlags.Input != "" {
		return SharedFlags.Input
	}
	if AppContainer != nil {
		return AppContainer.GetConfig().Input.Path
	}
	return ""
}

// LoadSnapshot loads the input document. A failed load is logged and
// reported, and the returned snapshot holds the empty model.
func LoadSnapshot() (*container.Snapshot, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return AppContainer.Load(InputPath())
}

// WriteOutput sends the output of write to --output, or to standard output
// when no file was given.
func WriteOutput(write func(io.Writer) error) error {
	if SharedFlags.Output == "" || SharedFlags.Output == "-" {
		return write(os.Stdout)
	}
	if AppContainer == nil {
		return fmt.Errorf("application not initialized")
	}
	return AppContainer.GetCSVWriter().WriteToFile(SharedFlags.Output, write)
}
