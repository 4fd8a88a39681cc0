package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/netdevops-io/go-fmc/pkg/fmc"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// Common static errors used throughout the commands package.
var (
	ErrUnknownObjectKind = errors.New("unknown object kind (expected host, network, range, or fqdn)")
	ErrValueRequired     = errors.New("object value is required (--value)")
)

// NewObjectsCommand creates the objects command group
func NewObjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objects",
		Aliases: []string{"object"},
		Short:   "Manage network objects",
		Long:    "List and manage FMC network objects (hosts, networks, ranges, FQDNs)",
	}

	cmd.AddCommand(newObjectsListCommand())
	cmd.AddCommand(newObjectsCreateCommand())
	cmd.AddCommand(newObjectsDeleteCommand())
	cmd.AddCommand(newObjectsImportCommand())

	return cmd
}

func newObjectsListCommand() *cobra.Command {
	var (
		kindName string
		allPages bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List network objects",
		Long:  "List network objects of the given kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := objectKind(kindName)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer client.Logout(ctx)

			var objects []fmc.NetworkObject

			if allPages {
				objects, err = client.NetworkObjects().ListAll(ctx, kind)
				if err != nil {
					return fmt.Errorf("failed to list %s objects: %w", kind, err)
				}
			} else {
				list, err := client.NetworkObjects().List(ctx, kind, fmc.NewQueryParams().WithExpanded(true))
				if err != nil {
					return fmt.Errorf("failed to list %s objects: %w", kind, err)
				}

				objects = list.Items
			}

			rendered, err := renderStructured(objects)
			if rendered || err != nil {
				return err
			}

			if len(objects) == 0 {
				fmt.Println("No objects found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Type", "Value", "Description", "ID")

			for _, object := range objects {
				_ = table.Append(object.Name, object.Type, object.Value, object.Description, object.ID)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "host", "object kind (host, network, range, fqdn)")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func newObjectsCreateCommand() *cobra.Command {
	var (
		kindName    string
		value       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a network object",
		Long:  "Create a network object of the given kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := objectKind(kindName)
			if err != nil {
				return err
			}

			if value == "" {
				return ErrValueRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer client.Logout(ctx)

			object, err := client.NetworkObjects().Create(ctx, kind, &fmc.NetworkObjectCreateRequest{
				Name:        args[0],
				Type:        string(kind),
				Value:       value,
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to create %s object: %w", kind, err)
			}

			rendered, err := renderStructured(object)
			if rendered || err != nil {
				return err
			}

			fmt.Printf("Created %s object '%s' (%s)\n", kind, object.Name, object.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "host", "object kind (host, network, range, fqdn)")
	cmd.Flags().StringVar(&value, "value", "", "object value (IP address, CIDR, or range)")
	cmd.Flags().StringVar(&description, "description", "", "object description")

	return cmd
}

func newObjectsDeleteCommand() *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a network object",
		Long:  "Delete the network object with the given name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := objectKind(kindName)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer client.Logout(ctx)

			object, err := client.NetworkObjects().FindByName(ctx, kind, args[0])
			if err != nil {
				return err
			}

			err = client.NetworkObjects().Delete(ctx, kind, object.ID)
			if err != nil {
				return fmt.Errorf("failed to delete %s object: %w", kind, err)
			}

			fmt.Printf("Deleted %s object '%s'\n", kind, object.Name)

			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", "host", "object kind (host, network, range, fqdn)")

	return cmd
}

func newObjectsImportCommand() *cobra.Command {
	var fromCSV string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-create network objects from a CSV file",
		Long: `Bulk-create network objects from a CSV file.

The file must carry a header row followed by name,type,value[,description]
records, where type is Host, Network, Range, or FQDN. Objects rejected by
the FMC are reported and skipped; the import continues with the next row.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(fromCSV)
			if err != nil {
				return fmt.Errorf("opening CSV file: %w", err)
			}
			defer file.Close()

			entries, err := fmc.ReadObjectsCSV(file)
			if err != nil {
				return fmt.Errorf("reading CSV file: %w", err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer client.Logout(ctx)

			manager := fmc.NewBulkManager(client.NetworkObjects(), newStderrLogger())

			summary, err := manager.CreateObjects(ctx, entries)
			if err != nil {
				return fmt.Errorf("bulk create aborted: %w", err)
			}

			rendered, err := renderStructured(summary)
			if rendered || err != nil {
				return err
			}

			fmt.Printf("Created %d of %d objects (%d failed)\n", summary.Succeeded, summary.Total, summary.Failed)

			for _, failure := range summary.Failures {
				fmt.Printf("  %s: %s\n", failure.Name, failure.Reason)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&fromCSV, "from-csv", "", "CSV file with objects to create")
	_ = cmd.MarkFlagRequired("from-csv")

	return cmd
}

// objectKind maps a CLI kind flag to the API object type.
func objectKind(name string) (fmc.ObjectKind, error) {
	switch strings.ToLower(name) {
	case "host":
		return fmc.KindHost, nil
	case "network":
		return fmc.KindNetwork, nil
	case "range":
		return fmc.KindRange, nil
	case "fqdn":
		return fmc.KindFQDN, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownObjectKind, name)
	}
}
