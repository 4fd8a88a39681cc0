package fmcclient

import (
	"fmt"
	"strings"

	"github.com/netdevops-io/go-fmc/internal/client"
	"github.com/netdevops-io/go-fmc/pkg/fmc"
)

// New creates a new FMC API client from the given configuration. The host
// may be given with or without a scheme; only the host part is kept. The
// first authenticated call establishes the session, so New itself performs
// no network I/O.
func New(config *fmc.Config) (fmc.Client, error) {
	if config == nil {
		return nil, fmc.ErrConfigRequired
	}

	config.Host = normalizeHost(config.Host)

	fmcClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return fmcClient, nil
}

// normalizeHost strips any scheme and trailing slash from a host value.
func normalizeHost(host string) string {
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")

	return strings.TrimSuffix(host, "/")
}
