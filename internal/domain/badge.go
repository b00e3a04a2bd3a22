package domain

import "time"

type Badge struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IconClass   string    `json:"icon_class"`
	CreatedAt   time.Time `json:"created_at"`
}
