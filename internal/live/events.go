package live

import "time"

// Event is the broadcast payload. Type is one of "catalog.loaded",
// "watchlist.update", "watchlist.delete", "review.create".
type Event struct {
	Type    string    `json:"type"`
	UserID  string    `json:"user_id,omitempty"`
	TitleID int       `json:"title_id,omitempty"`
	Title   string    `json:"title,omitempty"`
	Status  string    `json:"status,omitempty"`
	Count   int       `json:"count,omitempty"` // catalog size for catalog.loaded
	At      time.Time `json:"at"`
}

func CatalogLoaded(count int) Event {
	return Event{Type: "catalog.loaded", Count: count, At: time.Now().UTC()}
}

func WatchlistUpdate(userID string, titleID int, status string) Event {
	return Event{Type: "watchlist.update", UserID: userID, TitleID: titleID, Status: status, At: time.Now().UTC()}
}

func WatchlistDelete(userID string, titleID int) Event {
	return Event{Type: "watchlist.delete", UserID: userID, TitleID: titleID, At: time.Now().UTC()}
}

func ReviewCreate(userID string, titleID int) Event {
	return Event{Type: "review.create", UserID: userID, TitleID: titleID, At: time.Now().UTC()}
}
