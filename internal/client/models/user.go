// Package models defines client-side data models used by the hotelbook CLI.
package models

// User is the summary of the signed-in principal as returned by the API
// and persisted under the "user" storage key.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
