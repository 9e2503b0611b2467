// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered warehouse operator.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the login name. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	Password string `gorm:"size:255;not null"`

	// FullName is displayed on the home page.
	FullName string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
