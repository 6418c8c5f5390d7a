package models

// User is an editor account; it is only referenced, never modified here.
type User struct {
	ID       int64
	Username string
}
