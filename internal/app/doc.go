// Package app wires configuration, telemetry, the data sources and the HTTP
// layer into a runnable server.
//
// Initialization order:
//
//  1. Load configuration from defaults, config file and environment
//  2. Initialize logging and OpenTelemetry
//  3. Build the catalog store, enrollment loader and services
//  4. Set up the chi router with middleware and handlers
//  5. Create the HTTP server
//
// Run blocks until SIGINT or SIGTERM and then drains in-flight requests
// within Server.ShutdownTimeout. Initialization errors are returned; the
// package never calls os.Exit.
package app
