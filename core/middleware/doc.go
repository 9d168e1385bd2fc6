// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation for the results API. Swagger can be left public.
//   - rayid: tags every request with a Ray ID, stored in the context locals and echoed
//     in the response headers so log lines can be correlated.
package middleware
