// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which defines whether it is enabled
// and how its routes are registered.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features via LoadAll()
//
// Features like 'races', 'history' and 'integrity' are developed and tested in isolation
// and only meet in the start command.
package loader
