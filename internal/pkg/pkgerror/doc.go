// Package pkgerror carries failures from the usecase to the HTTP edge.
//
// An Error holds a type, a code and a user-facing message. The router turns
// the code into a status and the message into {"error": "..."}, so handlers
// never write error bodies themselves.
package pkgerror
