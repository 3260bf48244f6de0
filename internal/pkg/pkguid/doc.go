// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy. Depending on the use case you can generate:
//   - String IDs (UUIDv7), used as request correlation IDs.
//   - Numeric IDs (Snowflake), used to tag each summary pipeline run.
package pkguid
