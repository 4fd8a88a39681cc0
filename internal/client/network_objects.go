package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/netdevops-io/go-fmc/pkg/fmc"
)

// ErrObjectNotFound indicates a lookup by name matched no object.
var ErrObjectNotFound = errors.New("network object not found")

// NetworkObjectsClient implements fmc.NetworkObjectsClient.
type NetworkObjectsClient struct {
	client *Client
}

// NewNetworkObjectsClient creates a new network objects client.
func NewNetworkObjectsClient(client *Client) *NetworkObjectsClient {
	return &NetworkObjectsClient{
		client: client,
	}
}

// Create implements fmc.NetworkObjectsClient.Create.
func (c *NetworkObjectsClient) Create(ctx context.Context, kind fmc.ObjectKind, request *fmc.NetworkObjectCreateRequest) (*fmc.NetworkObject, error) {
	raw, err := c.client.Post(ctx, kind.Endpoint(), request)
	if err != nil {
		return nil, fmt.Errorf("creating %s object: %w", kind, err)
	}

	var object fmc.NetworkObject

	err = json.Unmarshal(raw, &object)
	if err != nil {
		return nil, fmt.Errorf("parsing %s object: %w", kind, err)
	}

	return &object, nil
}

// Get implements fmc.NetworkObjectsClient.Get.
func (c *NetworkObjectsClient) Get(ctx context.Context, kind fmc.ObjectKind, guid string) (*fmc.NetworkObject, error) {
	raw, err := c.client.Get(ctx, kind.Endpoint()+"/"+guid, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s object: %w", kind, err)
	}

	var object fmc.NetworkObject

	err = json.Unmarshal(raw, &object)
	if err != nil {
		return nil, fmt.Errorf("parsing %s object: %w", kind, err)
	}

	return &object, nil
}

// Update implements fmc.NetworkObjectsClient.Update. The request must carry
// the object GUID; FMC rejects updates whose body id disagrees with the URL.
func (c *NetworkObjectsClient) Update(ctx context.Context, kind fmc.ObjectKind, guid string, request *fmc.NetworkObjectUpdateRequest) (*fmc.NetworkObject, error) {
	raw, err := c.client.Put(ctx, kind.Endpoint()+"/"+guid, request)
	if err != nil {
		return nil, fmt.Errorf("updating %s object: %w", kind, err)
	}

	var object fmc.NetworkObject

	err = json.Unmarshal(raw, &object)
	if err != nil {
		return nil, fmt.Errorf("parsing %s object: %w", kind, err)
	}

	return &object, nil
}

// Delete implements fmc.NetworkObjectsClient.Delete.
func (c *NetworkObjectsClient) Delete(ctx context.Context, kind fmc.ObjectKind, guid string) error {
	err := c.client.Delete(ctx, kind.Endpoint()+"/"+guid)
	if err != nil {
		return fmt.Errorf("deleting %s object: %w", kind, err)
	}

	return nil
}

// List implements fmc.NetworkObjectsClient.List.
func (c *NetworkObjectsClient) List(ctx context.Context, kind fmc.ObjectKind, params *fmc.QueryParams) (*fmc.ListResponse[fmc.NetworkObject], error) {
	raw, err := c.client.Get(ctx, kind.Endpoint(), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing %s objects: %w", kind, err)
	}

	var list fmc.ListResponse[fmc.NetworkObject]

	err = json.Unmarshal(raw, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing %s objects list: %w", kind, err)
	}

	return &list, nil
}

// ListAll implements fmc.NetworkObjectsClient.ListAll: it walks every page
// of the collection with expanded details.
func (c *NetworkObjectsClient) ListAll(ctx context.Context, kind fmc.ObjectKind) ([]fmc.NetworkObject, error) {
	base := fmc.NewQueryParams().WithExpanded(true).ToValues()

	fetch := func(ctx context.Context, queryParams *fmc.QueryParams) (*fmc.ListResponse[fmc.NetworkObject], error) {
		return fetchPage[fmc.NetworkObject](ctx, c.client, kind.Endpoint(), base, queryParams)
	}

	items, err := fmc.AllPages(ctx, fetch, nil)
	if err != nil {
		return nil, fmt.Errorf("listing all %s objects: %w", kind, err)
	}

	return items, nil
}

// FindByName implements fmc.NetworkObjectsClient.FindByName using the
// server-side name filter. It returns ErrObjectNotFound when no object of
// the given kind carries that exact name.
func (c *NetworkObjectsClient) FindByName(ctx context.Context, kind fmc.ObjectKind, name string) (*fmc.NetworkObject, error) {
	params := fmc.NewQueryParams().WithFilter("name:" + name).WithExpanded(true)

	list, err := c.List(ctx, kind, params)
	if err != nil {
		return nil, err
	}

	for i := range list.Items {
		if list.Items[i].Name == name {
			return &list.Items[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s %q", ErrObjectNotFound, kind, name)
}
