package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logicdraft/logicdraft/engine/workflow"
	"github.com/logicdraft/logicdraft/pkg/logger"
)

// SerializeCmd converts a designer document into workflow definition JSON.
func SerializeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serialize",
		Short: "Serialize a designer document into a workflow definition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := setupContext(cmd)
			if err != nil {
				return err
			}
			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return fmt.Errorf("failed to get file flag: %w", err)
			}
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return fmt.Errorf("failed to get out flag: %w", err)
			}
			doc, err := workflow.Load(file)
			if err != nil {
				return err
			}
			if err := doc.Validate(workflow.Limits{
				MaxNodes:         cfg.Limits.MaxNodes,
				MaxValueSegments: cfg.Limits.MaxValueSegments,
				MaxPathDepth:     cfg.Limits.MaxPathDepth,
			}); err != nil {
				return err
			}
			definition, err := doc.Serialize(ctx)
			if err != nil {
				return err
			}
			var data []byte
			if cfg.Output.Indent {
				data, err = json.MarshalIndent(definition, "", "  ")
			} else {
				data, err = json.Marshal(definition)
			}
			if err != nil {
				return fmt.Errorf("failed to encode definition: %w", err)
			}
			if out == "" || out == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("failed to write definition: %w", err)
			}
			logger.FromContext(ctx).Info("wrote workflow definition", "file", out)
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "workflow.yaml", "Designer document to serialize")
	cmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	return cmd
}
