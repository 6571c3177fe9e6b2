// Package client contains the terminal client's infrastructure building
// blocks.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the gallery gateway (see the Client
//     interface): Ping, Challenge/Login, Gallery and Market.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a lazy
//     connection, attaches the access token obtained at login through a
//     unary interceptor and maps gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     listing journal, on sqlite or postgres with embedded goose migrations.
//
// # Error Handling
//
// ErrUnauthorized and ErrUnavailable are matched with errors.Is; any other
// status is wrapped as "rpc error".
package client
