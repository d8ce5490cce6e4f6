package config

import "time"

const (
	AppName = "Consulta Puntajes"

	DefaultPort           = 5000
	DefaultDataDir        = "datos"
	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxBodyBytes   = 64 << 10

	// Rate limiting, requests per second across all clients.
	DefaultRateLimit = 50
	DefaultBurstSize = 100
)
