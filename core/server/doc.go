// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only describes
// where it listens and which API key protects it. An empty ApiKey disables
// authentication.
package server
