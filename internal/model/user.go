package model

import "time"

// User is a registered account.
type User struct {
	CreatedAt    time.Time `json:"createdAt"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
}
