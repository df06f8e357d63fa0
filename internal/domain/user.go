package domain

import "time"

// User is a registered account. The password hash is a bcrypt digest and is
// never serialized into API responses.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
