package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mixlist/mixlist/internal/domain"
	"github.com/mixlist/mixlist/internal/repository"
)

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository     = (*Repository)(nil)
	_ repository.PlaylistRepository = (*Repository)(nil)
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CreateUser inserts an account. The unique index on email turns a duplicate
// registration race into ErrConflict instead of a silent second row.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return err
}

// GetUserByEmail fetches an account by its email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`
	row := r.pool.QueryRow(ctx, query, email)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreatePlaylist inserts a playlist.
func (r *Repository) CreatePlaylist(ctx context.Context, playlist *domain.Playlist) error {
	const query = `INSERT INTO playlists (id, owner_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, playlist.ID, playlist.OwnerID, playlist.Title, playlist.Description, playlist.CreatedAt, playlist.UpdatedAt)
	return err
}

// GetPlaylistByID fetches a playlist by identifier.
func (r *Repository) GetPlaylistByID(ctx context.Context, id string) (*domain.Playlist, error) {
	const query = `SELECT id, owner_id, title, description, created_at, updated_at
		FROM playlists WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	var p domain.Playlist
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListPlaylistsByOwner returns every playlist owned by the given account.
func (r *Repository) ListPlaylistsByOwner(ctx context.Context, ownerID string) ([]domain.Playlist, error) {
	const query = `SELECT id, owner_id, title, description, created_at, updated_at
		FROM playlists WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := make([]domain.Playlist, 0)
	for rows.Next() {
		var p domain.Playlist
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// UpdatePlaylist persists a playlist's mutable fields.
func (r *Repository) UpdatePlaylist(ctx context.Context, playlist *domain.Playlist) error {
	const query = `UPDATE playlists SET title = $2, description = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, playlist.ID, playlist.Title, playlist.Description, playlist.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeletePlaylist removes a playlist permanently.
func (r *Repository) DeletePlaylist(ctx context.Context, id string) error {
	const query = `DELETE FROM playlists WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
