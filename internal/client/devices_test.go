package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netdevops-io/go-fmc/pkg/fmc"
)

func TestDevicesListAll(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, domainPath("devices/devicerecords"), r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("expanded"))

		resp := fmc.ListResponse[fmc.Device]{
			Items: []fmc.Device{
				{ID: "dev-1", Name: "ftd-branch-01", Model: "Cisco Firepower 1120"},
				{ID: "dev-2", Name: "ftd-branch-02", Model: "Cisco Firepower 1120"},
			},
		}
		resp.Paging.Count = 2
		writeJSON(t, w, resp)
	})

	devices, err := client.Devices().ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "ftd-branch-01", devices[0].Name)
}

func TestDevicesListDeployable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, domainPath("deployment/deployabledevices"), r.URL.Path)

		resp := fmc.ListResponse[fmc.DeployableDevice]{
			Items: []fmc.DeployableDevice{
				{
					Name:    "ftd-branch-01",
					Version: "1700000000000",
					Device:  &fmc.Reference{ID: "dev-1"},
				},
			},
		}
		resp.Paging.Count = 1
		writeJSON(t, w, resp)
	})

	devices, err := client.Devices().ListDeployable(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "1700000000000", devices[0].Version)
	require.NotNil(t, devices[0].Device)
	assert.Equal(t, "dev-1", devices[0].Device.ID)
}

func TestDevicesDeploy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, domainPath("deployment/deploymentrequests"), r.URL.Path)

		var req fmc.DeploymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "DeploymentRequest", req.Type)
		assert.Equal(t, "1700000000000", req.Version)
		assert.Equal(t, []string{"dev-1", "dev-2"}, req.DeviceList)

		w.WriteHeader(http.StatusAccepted)
		writeJSON(t, w, fmc.DeploymentResponse{ID: "job-1", State: "DEPLOYING"})
	})

	deployment, err := client.Devices().Deploy(context.Background(), &fmc.DeploymentRequest{
		Version:    "1700000000000",
		DeviceList: []string{"dev-1", "dev-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", deployment.ID)
	assert.Equal(t, "DEPLOYING", deployment.State)
}
