// Package cli wires the logicdraft commands: serializing designer documents
// into workflow definitions and inspecting their parsed shape.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logicdraft/logicdraft/pkg/config"
	"github.com/logicdraft/logicdraft/pkg/logger"
)

// RootCmd builds the logicdraft command tree.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "logicdraft",
		Short:        "Logicdraft - workflow definition serializer",
		Long:         "Converts visual designer documents into workflow definition JSON.",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	cmd.AddCommand(SerializeCmd())
	cmd.AddCommand(InspectCmd())
	return cmd
}

// setupContext loads the configuration, builds the logger from config plus
// flag overrides, and attaches it to the command context.
func setupContext(cmd *cobra.Command) (context.Context, *config.Config, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.NewService().Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	level := cfg.Log.Level
	if flagLevel, err := cmd.Flags().GetString("log-level"); err == nil && flagLevel != "" {
		level = flagLevel
	}
	logJSON := cfg.Log.JSON
	if flagJSON, err := cmd.Flags().GetBool("log-json"); err == nil && flagJSON {
		logJSON = true
	}
	log := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(level),
		JSON:       logJSON,
		TimeFormat: "15:04:05",
	})
	logger.SetDefault(log)
	return logger.ContextWithLogger(ctx, log), cfg, nil
}
