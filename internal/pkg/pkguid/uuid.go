package pkguid

import "github.com/google/uuid"

// UUID hands out time-ordered (version 7) UUID strings. The app uses them as
// request correlation ids, so sorting ids roughly sorts requests.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (*UUID) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
