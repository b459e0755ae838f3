package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// LoggerConfig holds the persistent logging flags.
type LoggerConfig struct {
	Level  string
	JSON   bool
	Source bool
	Output io.Writer
}

// AddLoggerFlags registers --log-level, --log-json and --log-source.
func AddLoggerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("log-json", false, "log in JSON format")
	cmd.PersistentFlags().Bool("log-source", false, "include the source location in log entries")
}

// GetLoggerConfig reads the logging flags of cmd.
func GetLoggerConfig(cmd *cobra.Command) (LoggerConfig, error) {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return LoggerConfig{}, fmt.Errorf("failed to get log-level flag: %w", err)
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return LoggerConfig{}, fmt.Errorf("failed to get log-json flag: %w", err)
	}

	logSource, err := cmd.Flags().GetBool("log-source")
	if err != nil {
		return LoggerConfig{}, fmt.Errorf("failed to get log-source flag: %w", err)
	}

	return LoggerConfig{Level: level, JSON: logJSON, Source: logSource, Output: cmd.ErrOrStderr()}, nil
}

// NewLogger builds a logger from cfg. Unknown levels fall back to warn.
func NewLogger(cfg LoggerConfig) *log.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.WarnLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportCaller:    cfg.Source,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if cfg.JSON {
		logger.SetFormatter(log.JSONFormatter)
	}

	return logger
}

// SetupLogger installs the logger configured by the flags of cmd as the default.
func SetupLogger(cmd *cobra.Command) error {
	cfg, err := GetLoggerConfig(cmd)
	if err != nil {
		return err
	}
	log.SetDefault(NewLogger(cfg))
	return nil
}
