package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/netdevops-io/go-fmc/pkg/fmc"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// ErrNothingToDeploy indicates no device has pending configuration changes.
var ErrNothingToDeploy = errors.New("no deployable devices found")

// NewDevicesCommand creates the devices command group
func NewDevicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "devices",
		Aliases: []string{"device"},
		Short:   "Manage devices and deployments",
		Long:    "List managed devices and deploy pending configuration changes",
	}

	cmd.AddCommand(newDevicesListCommand())
	cmd.AddCommand(newDevicesDeployCommand())

	return cmd
}

func newDevicesListCommand() *cobra.Command {
	var deployable bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List managed devices",
		Long:  "List all managed devices, or only those with pending changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer client.Logout(ctx)

			if deployable {
				return listDeployableDevices(ctx, client)
			}

			devices, err := client.Devices().ListAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to list devices: %w", err)
			}

			rendered, err := renderStructured(devices)
			if rendered || err != nil {
				return err
			}

			if len(devices) == 0 {
				fmt.Println("No devices found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Host", "Model", "Version", "Health", "ID")

			for _, device := range devices {
				_ = table.Append(device.Name, device.HostName, device.Model,
					device.SWVersion, device.HealthState, device.ID)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&deployable, "deployable", false, "only devices with pending changes")

	return cmd
}

func listDeployableDevices(ctx context.Context, client fmc.Client) error {
	devices, err := client.Devices().ListDeployable(ctx)
	if err != nil {
		return fmt.Errorf("failed to list deployable devices: %w", err)
	}

	rendered, err := renderStructured(devices)
	if rendered || err != nil {
		return err
	}

	if len(devices) == 0 {
		fmt.Println("No deployable devices found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Version", "Device ID")

	for _, device := range devices {
		deviceID := ""
		if device.Device != nil {
			deviceID = device.Device.ID
		}

		_ = table.Append(device.Name, device.Version, deviceID)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newDevicesDeployCommand() *cobra.Command {
	var (
		force         bool
		ignoreWarning bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy pending configuration changes",
		Long:  "Deploy pending configuration changes to every deployable device",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer client.Logout(ctx)

			deployable, err := client.Devices().ListDeployable(ctx)
			if err != nil {
				return fmt.Errorf("failed to list deployable devices: %w", err)
			}

			if len(deployable) == 0 {
				return ErrNothingToDeploy
			}

			request := &fmc.DeploymentRequest{
				Version:       deployable[0].Version,
				ForceDeploy:   force,
				IgnoreWarning: ignoreWarning,
			}

			for _, device := range deployable {
				if device.Device != nil {
					request.DeviceList = append(request.DeviceList, device.Device.ID)
				}
			}

			deployment, err := client.Devices().Deploy(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to request deployment: %w", err)
			}

			rendered, err := renderStructured(deployment)
			if rendered || err != nil {
				return err
			}

			fmt.Printf("Deployment %s started for %d devices (state %s)\n",
				deployment.ID, len(request.DeviceList), deployment.State)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "force deployment even without pending changes")
	cmd.Flags().BoolVar(&ignoreWarning, "ignore-warnings", false, "proceed past deployment warnings")

	return cmd
}
