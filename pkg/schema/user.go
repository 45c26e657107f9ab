// Package schema defines the shared data structures exchanged between the
// Veridian service, SDK, and CLI.
package schema

import "time"

// Preferences holds per-user UI settings.
type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

// Profile is the free-form portion of a user record.
type Profile struct {
	Bio         string      `json:"bio"`
	Avatar      *string     `json:"avatar"`
	Preferences Preferences `json:"preferences"`
}

// UserRecord is the canonical representation of a registered user.
type UserRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Age         int       `json:"age"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Active      bool      `json:"active"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	Profile     Profile   `json:"profile"`
}

// DefaultProfile returns the profile assigned to freshly registered users.
func DefaultProfile() Profile {
	return Profile{
		Preferences: Preferences{
			Theme:         "light",
			Notifications: true,
		},
	}
}
