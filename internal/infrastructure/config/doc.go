// Package config provides 12-factor configuration management for the chat gateway.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, h2c, gzip, shutdown)
//   - Langflow: Flow engine base URL and relay settings
//   - Logging: Log level and output format
//   - RateLimit: Per-IP or global rate limiting (off by default)
//   - CORS: Allowed origins, headers and credentials
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Server running on %s\n", cfg.Server.Addr())
//
// Environment Variables:
//   - PORT, HOST, SERVER_H2C, SERVER_GZIP, SERVER_SHUTDOWN_TIMEOUT
//   - LANGFLOW_URL, LANGFLOW_ENABLED, LANGFLOW_FLOW_ID, LANGFLOW_API_KEY
//   - LANGFLOW_TIMEOUT, LANGFLOW_RETRIES, LANGFLOW_SANITIZE
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED, RATE_LIMIT_SCOPE
//   - CORS_ALLOW_ORIGINS, CORS_ALLOW_HEADERS, CORS_ALLOW_CREDENTIALS
package config
