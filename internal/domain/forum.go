package domain

import "time"

type ForumTopic struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	UserID         uint      `json:"user_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ForumPost struct {
	ID             uint      `json:"id"`
	Content        string    `json:"content"`
	UserID         uint      `json:"user_id"`
	TopicID        uint      `json:"topic_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
