package models

import "time"

type CreateHotelRequest struct {
	Name   string `json:"name"`
	Floors int    `json:"floors"`
}

type Hotel struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreateHotelRequest
}
