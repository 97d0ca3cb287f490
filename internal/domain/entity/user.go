package entity

// User represents an account. Username is the primary key and immutable.
// Active may be flipped by an administrative path; inactive accounts fail
// authorization even when holding a token that still verifies.
type User struct {
	Username     string
	Fullname     string
	PasswordHash string // bcrypt digest, never serialized outward
	Active       bool
}
