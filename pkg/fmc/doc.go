// Package fmc provides types, interfaces, and helpers for working with the
// Cisco Secure Firewall Management Center (FMC) REST API.
//
// # Overview
//
// The fmc package defines the domain types (e.g., NetworkObject, AccessPolicy,
// AccessRule, Device) and the interfaces for resource-oriented clients
// (e.g., NetworkObjectsClient, AccessPoliciesClient). A concrete
// implementation of these clients is provided by the fmcclient package, which
// wires configuration, transport, session management, rate limiting, and
// retry. Most consumers should import fmcclient to construct a client and
// then interact with the resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/netdevops-io/go-fmc/pkg/fmc"
//	  "github.com/netdevops-io/go-fmc/pkg/fmcclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := fmcclient.New(&fmc.Config{
//	    Host:     "fmc.example.com",
//	    Username: "api-user",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Logout(ctx)
//
//	  hosts, err := cli.NetworkObjects().List(ctx, fmc.KindHost, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = hosts
//	}
//
// # Sessions
//
// The client maintains exactly one live session. Authentication happens
// lazily on the first call and the session self-heals: tokens are refreshed
// shortly before their 30-minute expiry, and a failed refresh falls back to a
// full re-login. Call Logout (typically deferred) to revoke the token when
// the client goes out of scope.
//
// # Queries and pagination
//
// Use QueryParams to express common list options (offset, limit, filter,
// expanded). Paginated collections can be walked with a PageIterator or
// collected eagerly:
//
//	it := fmc.NewPageIterator(ctx, listFunc, nil)
//	for it.HasNext() {
//	  obj, err := it.Next()
//	  if err != nil { break }
//	  _ = obj
//	}
//
// # Errors
//
// API rejections are represented by ResponseError, which carries the HTTP
// status and the server-reported messages. Helpers such as IsNotFound and
// IsUnauthorized make it easy to branch on common cases. Only transport
// failures that survive the retry policy are returned as plain wrapped
// errors.
package fmc
