// Package pkgroutine runs background work, like the startup summary run,
// under a concurrency limit. Panics are logged and errors are collected for
// the shutdown path to report.
package pkgroutine
