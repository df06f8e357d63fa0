package domain

import "time"

// Playlist is a user-curated record. OwnerID is fixed at creation; only the
// owning account may update or delete the playlist.
type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
