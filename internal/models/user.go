package models

// User is a journal account. PasswordHash holds a bcrypt hash, never the plain password.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
