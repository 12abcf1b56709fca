package models

import "time"

// WatchlistItem is one saved title in a user's watchlist.
type WatchlistItem struct {
	UserID    string    `json:"user_id"`
	TitleID   int       `json:"title_id"`
	Status    string    `json:"status"` // "want_to_watch", "watching", "watched"
	UpdatedAt time.Time `json:"updated_at"`
}
