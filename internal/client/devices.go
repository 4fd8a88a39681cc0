package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/netdevops-io/go-fmc/pkg/fmc"
)

const (
	devicesEndpoint           = "devices/devicerecords"
	deployableDevicesEndpoint = "deployment/deployabledevices"
	deploymentEndpoint        = "deployment/deploymentrequests"
)

// DevicesClient implements fmc.DevicesClient.
type DevicesClient struct {
	client *Client
}

// NewDevicesClient creates a new devices client.
func NewDevicesClient(client *Client) *DevicesClient {
	return &DevicesClient{
		client: client,
	}
}

// Get implements fmc.DevicesClient.Get.
func (c *DevicesClient) Get(ctx context.Context, guid string) (*fmc.Device, error) {
	raw, err := c.client.Get(ctx, devicesEndpoint+"/"+guid, nil)
	if err != nil {
		return nil, fmt.Errorf("getting device: %w", err)
	}

	var device fmc.Device

	err = json.Unmarshal(raw, &device)
	if err != nil {
		return nil, fmt.Errorf("parsing device: %w", err)
	}

	return &device, nil
}

// List implements fmc.DevicesClient.List.
func (c *DevicesClient) List(ctx context.Context, params *fmc.QueryParams) (*fmc.ListResponse[fmc.Device], error) {
	raw, err := c.client.Get(ctx, devicesEndpoint, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	var list fmc.ListResponse[fmc.Device]

	err = json.Unmarshal(raw, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing devices list: %w", err)
	}

	return &list, nil
}

// ListAll implements fmc.DevicesClient.ListAll.
func (c *DevicesClient) ListAll(ctx context.Context) ([]fmc.Device, error) {
	base := fmc.NewQueryParams().WithExpanded(true).ToValues()

	fetch := func(ctx context.Context, queryParams *fmc.QueryParams) (*fmc.ListResponse[fmc.Device], error) {
		return fetchPage[fmc.Device](ctx, c.client, devicesEndpoint, base, queryParams)
	}

	devices, err := fmc.AllPages(ctx, fetch, nil)
	if err != nil {
		return nil, fmt.Errorf("listing all devices: %w", err)
	}

	return devices, nil
}

// ListDeployable implements fmc.DevicesClient.ListDeployable.
func (c *DevicesClient) ListDeployable(ctx context.Context) ([]fmc.DeployableDevice, error) {
	base := fmc.NewQueryParams().WithExpanded(true).ToValues()

	fetch := func(ctx context.Context, queryParams *fmc.QueryParams) (*fmc.ListResponse[fmc.DeployableDevice], error) {
		return fetchPage[fmc.DeployableDevice](ctx, c.client, deployableDevicesEndpoint, base, queryParams)
	}

	devices, err := fmc.AllPages(ctx, fetch, nil)
	if err != nil {
		return nil, fmt.Errorf("listing deployable devices: %w", err)
	}

	return devices, nil
}

// Deploy implements fmc.DevicesClient.Deploy. The request type defaults to
// DeploymentRequest when unset.
func (c *DevicesClient) Deploy(ctx context.Context, request *fmc.DeploymentRequest) (*fmc.DeploymentResponse, error) {
	if request.Type == "" {
		request.Type = "DeploymentRequest"
	}

	raw, err := c.client.Post(ctx, deploymentEndpoint, request)
	if err != nil {
		return nil, fmt.Errorf("requesting deployment: %w", err)
	}

	var deployment fmc.DeploymentResponse

	err = json.Unmarshal(raw, &deployment)
	if err != nil {
		return nil, fmt.Errorf("parsing deployment response: %w", err)
	}

	return &deployment, nil
}
