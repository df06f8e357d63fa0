package repository

import (
	"context"

	"github.com/mixlist/mixlist/internal/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// PlaylistRepository persists playlists.
type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *domain.Playlist) error
	GetPlaylistByID(ctx context.Context, id string) (*domain.Playlist, error)
	ListPlaylistsByOwner(ctx context.Context, ownerID string) ([]domain.Playlist, error)
	UpdatePlaylist(ctx context.Context, playlist *domain.Playlist) error
	DeletePlaylist(ctx context.Context, id string) error
}
