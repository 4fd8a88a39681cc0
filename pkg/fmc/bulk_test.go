package fmc

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObjectsClient records create calls and fails the names it is told to.
type fakeObjectsClient struct {
	NetworkObjectsClient

	created      []string
	rejectNames  map[string]bool
	transportErr error
}

func (f *fakeObjectsClient) Create(ctx context.Context, kind ObjectKind, request *NetworkObjectCreateRequest) (*NetworkObject, error) {
	if f.transportErr != nil {
		return nil, f.transportErr
	}

	if f.rejectNames[request.Name] {
		return nil, &ResponseError{
			StatusCode: http.StatusBadRequest,
			Err: &ErrorBody{
				Messages: []ErrorMessage{{Description: "duplicate name"}},
			},
		}
	}

	f.created = append(f.created, request.Name)

	return &NetworkObject{ID: "id-" + request.Name, Name: request.Name}, nil
}

func TestBulkCreateObjects(t *testing.T) {
	objects := &fakeObjectsClient{}
	manager := NewBulkManager(objects, nil)

	entries := []ObjectEntry{
		{Name: "h1", Kind: KindHost, Value: "10.0.0.1"},
		{Name: "n1", Kind: KindNetwork, Value: "10.1.0.0/16"},
		{Name: "r1", Kind: KindRange, Value: "10.2.0.1-10.2.0.50"},
	}

	summary, err := manager.CreateObjects(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Zero(t, summary.Failed)
	assert.Equal(t, []string{"h1", "n1", "r1"}, objects.created)
}

func TestBulkCreateObjectsSkipsInvalidValues(t *testing.T) {
	objects := &fakeObjectsClient{}
	manager := NewBulkManager(objects, nil)

	entries := []ObjectEntry{
		{Name: "good", Kind: KindHost, Value: "10.0.0.1"},
		{Name: "bad-host", Kind: KindHost, Value: "999.0.0.1"},
		{Name: "bad-range", Kind: KindRange, Value: "10.0.0.50-10.0.0.1"},
		{Name: "bad-kind", Kind: ObjectKind("Bogus"), Value: "x"},
	}

	summary, err := manager.CreateObjects(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 3, summary.Failed)
	require.Len(t, summary.Failures, 3)
	assert.Equal(t, "bad-host", summary.Failures[0].Name)
	// Invalid entries never reach the API.
	assert.Equal(t, []string{"good"}, objects.created)
}

func TestBulkCreateObjectsContinuesPastRejections(t *testing.T) {
	objects := &fakeObjectsClient{rejectNames: map[string]bool{"dup": true}}
	manager := NewBulkManager(objects, nil)

	entries := []ObjectEntry{
		{Name: "h1", Kind: KindHost, Value: "10.0.0.1"},
		{Name: "dup", Kind: KindHost, Value: "10.0.0.2"},
		{Name: "h2", Kind: KindHost, Value: "10.0.0.3"},
	}

	summary, err := manager.CreateObjects(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "dup", summary.Failures[0].Name)
	assert.Contains(t, summary.Failures[0].Reason, "duplicate name")
}

func TestBulkCreateObjectsAbortsOnTransportError(t *testing.T) {
	errConn := errors.New("connection refused")
	objects := &fakeObjectsClient{transportErr: errConn}
	manager := NewBulkManager(objects, nil)

	entries := []ObjectEntry{
		{Name: "h1", Kind: KindHost, Value: "10.0.0.1"},
		{Name: "h2", Kind: KindHost, Value: "10.0.0.2"},
	}

	summary, err := manager.CreateObjects(context.Background(), entries)
	require.Error(t, err)
	assert.ErrorIs(t, err, errConn)
	// The partial summary is still returned.
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.Total)
	assert.Zero(t, summary.Succeeded)
}

func TestReadObjectsCSV(t *testing.T) {
	input := strings.Join([]string{
		"name,type,value,description",
		"web-01,Host,10.1.1.10,Primary web server",
		"lan,Network,192.168.0.0/24",
		"dhcp-pool,Range,10.2.0.1-10.2.0.100,",
	}, "\n")

	entries, err := ReadObjectsCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, ObjectEntry{Name: "web-01", Kind: KindHost, Value: "10.1.1.10", Description: "Primary web server"}, entries[0])
	assert.Equal(t, ObjectEntry{Name: "lan", Kind: KindNetwork, Value: "192.168.0.0/24"}, entries[1])
	assert.Equal(t, ObjectEntry{Name: "dhcp-pool", Kind: KindRange, Value: "10.2.0.1-10.2.0.100"}, entries[2])
}

func TestReadObjectsCSVWithoutHeader(t *testing.T) {
	entries, err := ReadObjectsCSV(strings.NewReader("web-01,Host,10.1.1.10\n"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "web-01", entries[0].Name)
}

func TestReadObjectsCSVTooFewFields(t *testing.T) {
	_, err := ReadObjectsCSV(strings.NewReader("name,type,value\nweb-01,Host\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCSVFieldCount)
}

func TestWriteObjectsCSVRoundTrip(t *testing.T) {
	objects := []NetworkObject{
		{Name: "web-01", Type: "Host", Value: "10.1.1.10", Description: "Primary"},
		{Name: "lan", Type: "Network", Value: "192.168.0.0/24"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteObjectsCSV(&buf, objects))

	entries, err := ReadObjectsCSV(&buf)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "web-01", entries[0].Name)
	assert.Equal(t, KindNetwork, entries[1].Kind)
	assert.Equal(t, "192.168.0.0/24", entries[1].Value)
}
