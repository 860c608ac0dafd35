package models

import (
	"strings"
	"time"
)

type CreateUser struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	EmployeeID     *string `json:"employee_id,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	Role           *string `json:"role,omitempty"`
	Department     *string `json:"department,omitempty"`
	Timezone       *string `json:"timezone,omitempty"`
	// ClerkID is the identity provider's subject for this user.
	ClerkID string `json:"clerk_id"`
}

type User struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreateUser
}

func (u User) FullName() string {
	return joinName(u.FirstName, u.LastName)
}

func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
