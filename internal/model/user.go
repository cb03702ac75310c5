package model

import "time"

// User mirrors the 'users' table. The password hash never leaves the server.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Whatsapp     *string    `json:"whatsapp,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
