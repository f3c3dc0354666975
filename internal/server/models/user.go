// Package models holds the server's persisted records.
package models

import "time"

// User is a registered principal. Email is the identity and is unique,
// compared case-sensitively as stored.
type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
