package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/eviokit/evio"
)

var (
	// Global flags
	verbose      bool
	quiet        bool
	jsonOut      bool
	noColor      bool
	cfgFile      string
	cacheSize    int
	maxDepth     int
	payloadBytes int

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "evioctl",
	Short: "Inspect EVIO v6 data files",
	Long: `evioctl is a tool for inspecting CODA EVIO version 6 files. It reports
file and record headers, lists and dumps events, and decodes ROC time-slice
banks from streaming readout data.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		color.NoColor = color.NoColor || noColor
		l, err := newLogger()
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	pf.BoolVar(&jsonOut, "json", false, "Output in JSON format")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
	pf.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.evioctl.yaml)")
	pf.IntVar(&cacheSize, "cache-size", 0, "Decoded event cache entries (0 = no cache)")
	pf.IntVar(&maxDepth, "depth", 0, "Maximum bank depth to print (0 = unlimited)")
	pf.IntVar(&payloadBytes, "payload-bytes", 32, "Payload bytes shown per leaf (0 = all)")
	bindConfigFlags(pf)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a development logger in verbose mode and a production
// logger that only reports warnings otherwise.
func newLogger() (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// openFile opens path with the global cache and logger settings.
func openFile(path string) (*evio.File, error) {
	printVerbose("Opening file: %s\n", path)
	f, err := evio.Open(path, evio.OpenOptions{Logger: logger, CacheSize: cacheSize})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, color.RedString("Error: ")+fmt.Sprintf(format, args...))
}

// printWarn prints a warning if not in quiet mode
func printWarn(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprint(os.Stderr, color.YellowString("Warning: ")+fmt.Sprintf(format, args...))
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// stdout returns the writer for primary output, honoring --quiet
func stdout() io.Writer {
	if quiet && !jsonOut {
		return io.Discard
	}
	return os.Stdout
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatSize renders a byte count for humans.
func formatSize(size int) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
