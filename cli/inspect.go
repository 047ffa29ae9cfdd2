package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logicdraft/logicdraft/engine/path"
	"github.com/logicdraft/logicdraft/engine/workflow"
)

// InspectCmd dumps the parsed paths and value segments of a document, which
// is mostly useful when a serialized definition does not match expectations.
func InspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump the parsed parameters of a designer document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, err := setupContext(cmd)
			if err != nil {
				return err
			}
			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return fmt.Errorf("failed to get file flag: %w", err)
			}
			doc, err := workflow.Load(file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, node := range doc.Nodes {
				fmt.Fprintf(out, "%s (%s)\n", node.ID, node.Type)
				for _, p := range node.Parameters {
					parsed := path.Parse(p.Key)
					fmt.Fprintf(out, "  %s -> %d path segments, %d value segments, rendered %q\n",
						p.Key, len(parsed), len(p.Value), p.RenderValue(false))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "workflow.yaml", "Designer document to inspect")
	return cmd
}
