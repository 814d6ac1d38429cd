package models

import "time"

// User is the stored credential record. PasswordHash always holds a bcrypt
// digest, never the plaintext.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
