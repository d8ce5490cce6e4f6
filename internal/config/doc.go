// Package config loads the service configuration.
//
// Values are layered, later sources winning:
//
//	1. Default()
//	2. a YAML file: $PUNTAJES_CONFIG_FILE, ./config.yaml or ./configs/config.yaml
//	3. PUNTAJES_* environment variables
//
// Environment variables follow the struct nesting:
//
//	PUNTAJES_SERVER_PORT=5000
//	PUNTAJES_PATHS_DATA_DIR=/srv/datos
//	PUNTAJES_SECURITY_ALLOWED_ORIGINS=http://localhost:5173
//	PUNTAJES_LOGGING_LEVEL=debug
//	PUNTAJES_TELEMETRY_ENABLE_TRACING=true
//
// ResolvePaths turns the configured directories into absolute paths.
package config
