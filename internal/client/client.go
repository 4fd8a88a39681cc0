// Package client implements the fmc.Client interface on top of the
// authenticated request pipeline.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/netdevops-io/go-fmc/internal/http"
	"github.com/netdevops-io/go-fmc/pkg/fmc"
)

// ErrNoVersionInfo indicates the server version endpoint returned an empty
// item list.
var ErrNoVersionInfo = errors.New("server returned no version information")

// Client implements fmc.Client.
type Client struct {
	httpClient *http.Client
	logger     fmc.Logger

	networkObjects fmc.NetworkObjectsClient
	accessPolicies fmc.AccessPoliciesClient
	devices        fmc.DevicesClient
}

// New creates a new FMC API client. The configuration is validated eagerly;
// no network call happens until the first operation.
func New(config *fmc.Config, opts ...http.Option) (*Client, error) {
	httpClient, err := http.NewClient(config, opts...)
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = fmc.NoopLogger()
	}

	client := &Client{
		httpClient: httpClient,
		logger:     logger,
	}

	client.networkObjects = NewNetworkObjectsClient(client)
	client.accessPolicies = NewAccessPoliciesClient(client)
	client.devices = NewDevicesClient(client)

	return client, nil
}

// Authenticate implements fmc.SessionClient.Authenticate.
func (c *Client) Authenticate(ctx context.Context) error {
	return c.httpClient.Sessions().Authenticate(ctx)
}

// Logout implements fmc.SessionClient.Logout. Revocation is best effort and
// the session is cleared regardless; calling it twice is harmless.
func (c *Client) Logout(ctx context.Context) {
	c.httpClient.Sessions().Logout(ctx)
}

// Get implements fmc.RawClient.Get.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	resp, err := c.httpClient.Get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body), nil
}

// Post implements fmc.RawClient.Post.
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}) (json.RawMessage, error) {
	resp, err := c.httpClient.Post(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body), nil
}

// Put implements fmc.RawClient.Put.
func (c *Client) Put(ctx context.Context, endpoint string, body interface{}) (json.RawMessage, error) {
	resp, err := c.httpClient.Put(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body), nil
}

// Delete implements fmc.RawClient.Delete.
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	_, err := c.httpClient.Delete(ctx, endpoint)

	return err
}

// GetAllPages implements fmc.RawClient.GetAllPages: it walks the collection
// at endpoint with offset/limit paging and returns every item in server
// order. A page rejected by the API or lacking an items list ends the walk
// as end-of-data; only transport failures are reported.
func (c *Client) GetAllPages(ctx context.Context, endpoint string, params url.Values) ([]json.RawMessage, error) {
	fetch := func(ctx context.Context, queryParams *fmc.QueryParams) (*fmc.ListResponse[json.RawMessage], error) {
		return fetchPage[json.RawMessage](ctx, c, endpoint, params, queryParams)
	}

	items, err := fmc.AllPages(ctx, fetch, nil)
	if err != nil {
		return items, err
	}

	c.logger.Info("retrieved all pages", map[string]interface{}{
		"endpoint": endpoint,
		"items":    len(items),
	})

	return items, nil
}

// NetworkObjects implements fmc.ResourceClients.NetworkObjects.
func (c *Client) NetworkObjects() fmc.NetworkObjectsClient {
	return c.networkObjects
}

// AccessPolicies implements fmc.ResourceClients.AccessPolicies.
func (c *Client) AccessPolicies() fmc.AccessPoliciesClient {
	return c.accessPolicies
}

// Devices implements fmc.ResourceClients.Devices.
func (c *Client) Devices() fmc.DevicesClient {
	return c.devices
}

// GetServerVersion implements fmc.SystemClient.GetServerVersion.
func (c *Client) GetServerVersion(ctx context.Context) (*fmc.ServerVersion, error) {
	raw, err := c.Get(ctx, "info/serverversion", nil)
	if err != nil {
		return nil, fmt.Errorf("getting server version: %w", err)
	}

	var list fmc.ListResponse[fmc.ServerVersion]

	err = json.Unmarshal(raw, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing server version: %w", err)
	}

	if len(list.Items) == 0 {
		return nil, ErrNoVersionInfo
	}

	return &list.Items[0], nil
}

// fetchPage fetches one typed page for the page walker, merging the
// iterator-controlled offset/limit into the caller-supplied parameters. An
// API rejection or an unparseable envelope is treated as end-of-data.
func fetchPage[T any](ctx context.Context, c *Client, endpoint string, base url.Values, queryParams *fmc.QueryParams) (*fmc.ListResponse[T], error) {
	values := mergeValues(base, queryParams)

	raw, err := c.Get(ctx, endpoint, values)
	if err != nil {
		respErr := &fmc.ResponseError{}
		if errors.As(err, &respErr) {
			return &fmc.ListResponse[T]{}, nil
		}

		return nil, err
	}

	var list fmc.ListResponse[T]

	if err := json.Unmarshal(raw, &list); err != nil {
		return &fmc.ListResponse[T]{}, nil
	}

	return &list, nil
}

// mergeValues copies base and overlays the iterator's paging parameters.
func mergeValues(base url.Values, queryParams *fmc.QueryParams) url.Values {
	values := url.Values{}

	for key, vals := range base {
		for _, val := range vals {
			values.Add(key, val)
		}
	}

	for key, vals := range queryParams.ToValues() {
		values[key] = vals
	}

	return values
}
