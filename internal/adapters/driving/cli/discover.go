package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Emit a schema message for each configured collection",
	Long: `Describes each configured collection as a SCHEMA message on stdout.

Collections with a configured schema use it directly; the rest are
sampled (up to 10 documents) to infer field types. Schemas are always
open, since Firestore collections are schemaless.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.coordinator.Discover(ctx); err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	return nil
}
