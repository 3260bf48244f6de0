// Package pkglog sets up slog for the service.
//
// Every record is JSON with "ts" and "severity" keys and carries the service
// name, the request correlation id and, inside a summary run, the run id.
package pkglog
