package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify FMC connectivity and credentials",
		Long:  "Authenticate against the configured FMC and report its software versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			err = client.Authenticate(ctx)
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			defer client.Logout(ctx)

			serverVersion, err := client.GetServerVersion(ctx)
			if err != nil {
				return fmt.Errorf("failed to read server version: %w", err)
			}

			rendered, err := renderStructured(serverVersion)
			if rendered || err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("Server version", serverVersion.ServerVersion)
			_ = table.Append("Geolocation DB", serverVersion.GeoVersion)
			_ = table.Append("VDB", serverVersion.VDBVersion)
			_ = table.Append("SRU", serverVersion.SRUVersion)

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
