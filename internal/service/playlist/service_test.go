package playlist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mixlist/mixlist/internal/domain"
	"github.com/mixlist/mixlist/internal/repository"
)

type playlistRepoStub struct {
	byID    map[string]domain.Playlist
	byOwner map[string][]domain.Playlist

	updated *domain.Playlist
	deleted []string
}

func (s *playlistRepoStub) CreatePlaylist(ctx context.Context, playlist *domain.Playlist) error {
	return nil
}

func (s *playlistRepoStub) GetPlaylistByID(ctx context.Context, id string) (*domain.Playlist, error) {
	if p, ok := s.byID[id]; ok {
		return &p, nil
	}
	return nil, repository.ErrNotFound
}

func (s *playlistRepoStub) ListPlaylistsByOwner(ctx context.Context, ownerID string) ([]domain.Playlist, error) {
	return append([]domain.Playlist(nil), s.byOwner[ownerID]...), nil
}

func (s *playlistRepoStub) UpdatePlaylist(ctx context.Context, playlist *domain.Playlist) error {
	s.updated = playlist
	return nil
}

func (s *playlistRepoStub) DeletePlaylist(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strptr(s string) *string { return &s }

func TestCreateAssignsOwnerAndID(t *testing.T) {
	repo := &playlistRepoStub{}
	svc := New(repo, newLogger())

	created, err := svc.Create(context.Background(), "owner-1", "Road Trip", "songs for long drives")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated playlist id")
	}
	if created.OwnerID != "owner-1" {
		t.Fatalf("unexpected owner: %q", created.OwnerID)
	}
	if created.CreatedAt.IsZero() || !created.UpdatedAt.Equal(created.CreatedAt) {
		t.Fatalf("unexpected timestamps: %+v", created)
	}
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	stored := domain.Playlist{
		ID:          "pl-1",
		OwnerID:     "owner-1",
		Title:       "Old Title",
		Description: "old description",
		UpdatedAt:   time.Now().Add(-time.Hour),
	}
	repo := &playlistRepoStub{byID: map[string]domain.Playlist{"pl-1": stored}}
	svc := New(repo, newLogger())

	updated, err := svc.Update(context.Background(), "owner-1", "pl-1", strptr("New Title"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "New Title" {
		t.Fatalf("expected title overwritten, got %q", updated.Title)
	}
	if updated.Description != "old description" {
		t.Fatalf("expected description untouched, got %q", updated.Description)
	}
	if repo.updated == nil {
		t.Fatalf("expected merged record to be persisted")
	}
	if !updated.UpdatedAt.After(stored.UpdatedAt) {
		t.Fatalf("expected UpdatedAt to advance")
	}
}

func TestUpdateWithNoFieldsReturnsUnchanged(t *testing.T) {
	stored := domain.Playlist{ID: "pl-1", OwnerID: "owner-1", Title: "Keep", Description: "as-is"}
	repo := &playlistRepoStub{byID: map[string]domain.Playlist{"pl-1": stored}}
	svc := New(repo, newLogger())

	updated, err := svc.Update(context.Background(), "owner-1", "pl-1", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Keep" || updated.Description != "as-is" {
		t.Fatalf("expected record unchanged, got %+v", updated)
	}
	if repo.updated != nil {
		t.Fatalf("expected no store write for an empty update")
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	repo := &playlistRepoStub{byID: map[string]domain.Playlist{
		"pl-1": {ID: "pl-1", OwnerID: "owner-1"},
	}}
	svc := New(repo, newLogger())

	if _, err := svc.Update(context.Background(), "intruder", "pl-1", strptr("Mine Now"), nil); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("expected no store write after ownership rejection")
	}
}

func TestUpdateMissingPlaylistIsNotFound(t *testing.T) {
	svc := New(&playlistRepoStub{}, newLogger())
	if _, err := svc.Update(context.Background(), "owner-1", "absent", strptr("Title"), nil); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteGuardsOwnershipAfterExistence(t *testing.T) {
	repo := &playlistRepoStub{byID: map[string]domain.Playlist{
		"pl-1": {ID: "pl-1", OwnerID: "owner-1"},
	}}
	svc := New(repo, newLogger())

	if err := svc.Delete(context.Background(), "intruder", "pl-1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(context.Background(), "owner-1", "absent"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("expected no deletions, got %v", repo.deleted)
	}
	if err := svc.Delete(context.Background(), "owner-1", "pl-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "pl-1" {
		t.Fatalf("unexpected deletions: %v", repo.deleted)
	}
}

func TestListIsScopedToOwner(t *testing.T) {
	repo := &playlistRepoStub{byOwner: map[string][]domain.Playlist{
		"owner-1": {{ID: "pl-1", OwnerID: "owner-1"}},
		"owner-2": {{ID: "pl-2", OwnerID: "owner-2"}},
	}}
	svc := New(repo, newLogger())

	playlists, err := svc.List(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(playlists) != 1 || playlists[0].ID != "pl-1" {
		t.Fatalf("unexpected playlists: %+v", playlists)
	}
}
