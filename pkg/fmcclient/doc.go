// Package fmcclient provides the main entry point for creating Firepower
// Management Center API clients.
//
// Basic usage:
//
//	client, err := fmcclient.New(&fmc.Config{
//	    Host:     "fmc.example.com",
//	    Username: "api-user",
//	    Password: "secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Logout(context.Background())
//
//	hosts, err := client.NetworkObjects().ListAll(ctx, fmc.KindHost)
package fmcclient
