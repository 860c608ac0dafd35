package models

import "time"

type CreateGuest struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	Timezone       *string `json:"timezone,omitempty"`
}

type UpdateGuest struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	Timezone       *string `json:"timezone,omitempty"`
}

type Guest struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreateGuest
}

// FullName joins the first and last name.
func (g Guest) FullName() string {
	return joinName(g.FirstName, g.LastName)
}
