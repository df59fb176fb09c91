// internal/songs/repository.go
//
// sqlx repositories for the `song` and `deleted_song` tables.
//
// The active table carries UNIQUE(spotify_id); Insert recognises the MySQL
// duplicate-key error and reports it as fault.Conflict, which the HTTP
// boundary turns into a 409.  The archive table has no such index.

package songs

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/fault"
)

// isDuplicateKey recognises MariaDB/MySQL error 1062 without importing
// driver-specific types.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// Store is the active-record repository.
type Store struct{ db *sqlx.DB }

// NewStore returns a Store bound to db.
func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// Insert persists rec.  A duplicate spotify_id among active songs →
// fault.Conflict with no side effects.
func (s *Store) Insert(ctx context.Context, rec Record) (Record, error) {
	if rec.AddedAt.IsZero() {
		rec.AddedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO song (spotify_id, title, artist, image_url, added_by, added_at)
        VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		rec.SpotifyID, rec.Title, rec.Artist, rec.ImageURL, rec.AddedBy, rec.AddedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return Record{}, fault.Conflictf("this song is already in your shared collection")
		}
		return Record{}, fault.Store("insert song", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fault.Store("insert song id", err)
	}
	rec.ID = uint64(id)
	return rec, nil
}

// GetByID fetches a single active song.
func (s *Store) GetByID(ctx context.Context, id uint64) (Record, error) {
	const q = `
        SELECT id, spotify_id, title, artist, image_url, added_by, added_at
        FROM   song
        WHERE  id = ?`
	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fault.NotFoundf("song %d not found", id)
		}
		return Record{}, fault.Store("get song", err)
	}
	return rec, nil
}

// DeleteByID removes an active song.
func (s *Store) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM song WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete song", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("song %d not found", id)
	}
	return nil
}

// ListAll returns every active song, most recently added first.
func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	const q = `
        SELECT id, spotify_id, title, artist, image_url, added_by, added_at
        FROM   song
        ORDER  BY added_at DESC`
	var rows []Record
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list songs", err)
	}
	return rows, nil
}

// ArchiveStore is the deleted-record repository.
type ArchiveStore struct{ db *sqlx.DB }

// NewArchiveStore returns an ArchiveStore bound to db.
func NewArchiveStore(db *sqlx.DB) *ArchiveStore { return &ArchiveStore{db: db} }

// Insert persists an archived song.  DeletedAt defaults to now.
func (s *ArchiveStore) Insert(ctx context.Context, a Archived) (Archived, error) {
	if a.DeletedAt.IsZero() {
		a.DeletedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO deleted_song
               (original_id, spotify_id, title, artist, image_url, added_by, added_at, deleted_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		a.OriginalID, a.SpotifyID, a.Title, a.Artist, a.ImageURL, a.AddedBy, a.AddedAt, a.DeletedAt)
	if err != nil {
		return Archived{}, fault.Store("insert deleted song", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Archived{}, fault.Store("insert deleted song id", err)
	}
	a.ID = uint64(id)
	return a, nil
}

// GetByID fetches a single archived song.
func (s *ArchiveStore) GetByID(ctx context.Context, id uint64) (Archived, error) {
	const q = `
        SELECT id, original_id, spotify_id, title, artist, image_url, added_by, added_at, deleted_at
        FROM   deleted_song
        WHERE  id = ?`
	var a Archived
	if err := s.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Archived{}, fault.NotFoundf("song %d is not in the archive", id)
		}
		return Archived{}, fault.Store("get deleted song", err)
	}
	return a, nil
}

// DeleteByID removes an archived song (restore or purge).
func (s *ArchiveStore) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deleted_song WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete deleted song", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("song %d is not in the archive", id)
	}
	return nil
}

// ListAll returns every archived song, most recently deleted first.
func (s *ArchiveStore) ListAll(ctx context.Context) ([]Archived, error) {
	const q = `
        SELECT id, original_id, spotify_id, title, artist, image_url, added_by, added_at, deleted_at
        FROM   deleted_song
        ORDER  BY deleted_at DESC`
	var rows []Archived
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list deleted songs", err)
	}
	return rows, nil
}
