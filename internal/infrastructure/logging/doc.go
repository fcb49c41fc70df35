// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Handlers log through WithContext so every line emitted while serving a
// request carries the request id set by the request id middleware.
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.WithContext(ctx).Error("Relay failed", zap.Error(err))
package logging
