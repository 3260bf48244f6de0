package pkguid

// StringID produces ids carried as text, such as correlation ids.
type StringID interface {
	Generate() string
}

// NumberID produces sortable numeric ids, such as summary run ids.
type NumberID interface {
	Generate() int64
}
