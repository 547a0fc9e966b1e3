package model

import "time"

// User serializes with the field names the existing frontend expects,
// including the Mongo-style "_id". The password hash never leaves the server.
type User struct {
	ID           int64     `json:"_id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedOn    time.Time `json:"createdOn"`
}
