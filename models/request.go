package models

import "time"

// MakeRequest is the body for creating a guest service request. ID and
// timestamps are assigned by the backend.
type MakeRequest struct {
	HotelID                 string     `json:"hotel_id"`
	GuestID                 *string    `json:"guest_id,omitempty"`
	UserID                  *string    `json:"user_id,omitempty"`
	ReservationID           *string    `json:"reservation_id,omitempty"`
	Name                    string     `json:"name"`
	Description             *string    `json:"description,omitempty"`
	RoomID                  *string    `json:"room_id,omitempty"`
	RequestCategory         *string    `json:"request_category,omitempty"`
	RequestType             string     `json:"request_type"`
	Department              *string    `json:"department,omitempty"`
	Status                  string     `json:"status"`
	Priority                string     `json:"priority"`
	EstimatedCompletionTime *int       `json:"estimated_completion_time,omitempty"`
	ScheduledTime           *time.Time `json:"scheduled_time,omitempty"`
	CompletedAt             *time.Time `json:"completed_at,omitempty"`
	Notes                   *string    `json:"notes,omitempty"`
}

// GenerateRequestInput asks the backend to draft a request from free text.
type GenerateRequestInput struct {
	RawText string `json:"raw_text"`
	HotelID string `json:"hotel_id"`
}

type Request struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	MakeRequest
}
