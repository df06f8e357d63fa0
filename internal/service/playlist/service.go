package playlist

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/mixlist/mixlist/internal/domain"
	"github.com/mixlist/mixlist/internal/repository"
)

// ErrNotOwner is returned when an authenticated account touches a playlist
// owned by someone else. The ownership check runs only after the playlist is
// known to exist, so a missing id surfaces as repository.ErrNotFound first.
var ErrNotOwner = errors.New("playlist does not belong to the authenticated user")

// Service handles playlist CRUD with per-account ownership enforcement.
type Service struct {
	playlists repository.PlaylistRepository
	logger    *slog.Logger
}

// New constructs a Service.
func New(playlists repository.PlaylistRepository, logger *slog.Logger) Service {
	return Service{playlists: playlists, logger: logger}
}

// List returns the playlists owned by ownerID. The query itself is scoped to
// the owner, so other accounts' records are never read.
func (s Service) List(ctx context.Context, ownerID string) ([]domain.Playlist, error) {
	return s.playlists.ListPlaylistsByOwner(ctx, ownerID)
}

// Create stores a new playlist owned by ownerID.
func (s Service) Create(ctx context.Context, ownerID, title, description string) (*domain.Playlist, error) {
	now := time.Now().UTC()
	p := &domain.Playlist{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.playlists.CreatePlaylist(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("playlist created", "playlist_id", p.ID, "user_id", ownerID)
	return p, nil
}

// Update applies a partial merge: only non-nil fields overwrite the stored
// record. An update with no fields returns the playlist unchanged.
func (s Service) Update(ctx context.Context, ownerID, playlistID string, title, description *string) (*domain.Playlist, error) {
	p, err := s.guard(ctx, ownerID, playlistID)
	if err != nil {
		return nil, err
	}
	if title == nil && description == nil {
		return p, nil
	}
	if title != nil {
		p.Title = *title
	}
	if description != nil {
		p.Description = *description
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.playlists.UpdatePlaylist(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a playlist after the ownership check passes.
func (s Service) Delete(ctx context.Context, ownerID, playlistID string) error {
	if _, err := s.guard(ctx, ownerID, playlistID); err != nil {
		return err
	}
	if err := s.playlists.DeletePlaylist(ctx, playlistID); err != nil {
		return err
	}
	s.logger.Info("playlist deleted", "playlist_id", playlistID, "user_id", ownerID)
	return nil
}

// guard fetches the playlist and verifies ownership. Not-found wins over
// not-owner.
func (s Service) guard(ctx context.Context, ownerID, playlistID string) (*domain.Playlist, error) {
	p, err := s.playlists.GetPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return p, nil
}
