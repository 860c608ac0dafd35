package models

import "time"

type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeQueen  RoomType = "queen"
	RoomTypeKing   RoomType = "king"
)

// Valid reports whether t is one of the known room types.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeQueen, RoomTypeKing:
		return true
	}
	return false
}

type Room struct {
	ID         string    `json:"id"`
	RoomNumber int       `json:"room_number"`
	Floor      int       `json:"floor"`
	RoomType   RoomType  `json:"room_type"`
	Features   []string  `json:"features"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RoomFilters narrows a room listing. It is sent as query parameters, so
// empty filters are left out.
type RoomFilters struct {
	Floors    []int      `json:"floors,omitempty"`
	RoomTypes []RoomType `json:"room_types,omitempty"`
}
