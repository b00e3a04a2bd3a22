package domain

import "time"

type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	// Vagas is the seat capacity. Committed enrollments never exceed it.
	Vagas     int       `json:"vagas"`
	Date      time.Time `json:"date"`
	ClubID    uint      `json:"club_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EventDetail struct {
	Event
	SeatsRemaining int64 `json:"seats_remaining"`
	IsEnrolled     bool  `json:"is_enrolled"`
}
