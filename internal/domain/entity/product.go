package entity

// Product is immutable once created; there is no update path.
type Product struct {
	ID   int64
	Name string // unique, 3-500 chars
}
