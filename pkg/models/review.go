package models

import "time"

type Review struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	TitleID   int       `json:"title_id"`
	Rating    int       `json:"rating"` // 1-10
	Text      string    `json:"text,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
