package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newBuildCmd creates the build command. Building is otherwise implicit:
// every command restores or rebuilds the indices on startup.
func newBuildCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build or refresh the search indices",
		Long: `Build the lexical and semantic indices for the catalog and persist
them to the artifact cache. Cached indices consistent with the current
catalog are reused; use --force to discard them and rebuild.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if force {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				if err := os.Remove(cfg.Cache.Path); err != nil && !os.IsNotExist(err) {
					return err
				}
			}
			c, err := initComponents(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d documents (%d chunks) into %s\n",
				c.lexical.N(), c.semantic.Len(), c.cfg.Cache.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "discard cached indices and rebuild")
	return cmd
}
