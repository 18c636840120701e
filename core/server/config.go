package server

import "net"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface to bind; empty binds every interface.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
}

// Addr returns the listen address for the server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
