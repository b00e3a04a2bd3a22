package domain

import "time"

type News struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
	EventID     *uint     `json:"event_id,omitempty"`
	EventTitle  string    `json:"event_title,omitempty"`
}
