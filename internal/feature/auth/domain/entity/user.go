// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account that owns tasks.
// Users are immutable after registration.
type User struct {
	// ID is an opaque identifier (UUID string) assigned on creation.
	ID string `gorm:"primaryKey;size:36"`

	FirstName string `gorm:"type:text"`
	LastName  string `gorm:"type:text"`

	// Email is used for login and must be unique across all users.
	// Registration rejects addresses longer than the column.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Number is an optional phone number.
	Number string `gorm:"type:text"`

	// Password is the bcrypt hash. It must never hold plaintext.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
