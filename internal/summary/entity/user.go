package entity

// User is one validated record read from an input file.
//
// ID keeps the canonical decimal text of the id, since ids are only
// identifiers and may exceed the int64 range.
type User struct {
	ID      string
	Name    string
	Email   string
	Age     int64
	Country string
}
