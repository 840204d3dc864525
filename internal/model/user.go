package model

import "time"

// User is a registered account on the platform side.
type User struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
}
