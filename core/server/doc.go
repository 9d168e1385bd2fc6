// Package server holds the HTTP results API configuration.
//
// The start command builds the Fiber application from this configuration; the package itself
// only defines the settings (listen port, API key, timeouts) and their defaults.
package server
