// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework used by the results API.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and attaches it to the log entry so that all
// logs of a request can be correlated. WithRace does the same for a single race id while a feed is
// being reconciled, which is how per-race failures are reported without aborting a batch.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Fetching feeds")
//
//	logger.WithRace(log, raceID).Warn("Skipping race", zap.Error(err))
package logger
