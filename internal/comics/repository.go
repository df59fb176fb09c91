// internal/comics/repository.go
//
// sqlx repositories for the `comic` and `deleted_comic` tables.  The
// panels column is JSON; the Panels type handles the codec.

package comics

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/fault"
)

// Store is the active-record repository.
type Store struct{ db *sqlx.DB }

// NewStore returns a Store bound to db.
func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// Insert persists rec and returns it with the assigned id.
func (s *Store) Insert(ctx context.Context, rec Record) (Record, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO comic (theme, comic_title, panels, created_at)
        VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		rec.Theme, rec.ComicTitle, rec.Panels, rec.CreatedAt)
	if err != nil {
		return Record{}, fault.Store("insert comic", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fault.Store("insert comic id", err)
	}
	rec.ID = uint64(id)
	return rec, nil
}

// GetByID fetches a single active comic.
func (s *Store) GetByID(ctx context.Context, id uint64) (Record, error) {
	const q = `
        SELECT id, theme, comic_title, panels, created_at
        FROM   comic
        WHERE  id = ?`
	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fault.NotFoundf("comic %d not found", id)
		}
		return Record{}, fault.Store("get comic", err)
	}
	return rec, nil
}

// DeleteByID removes an active comic.
func (s *Store) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comic WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete comic", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("comic %d not found", id)
	}
	return nil
}

// ListAll returns every active comic, newest first.
func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	const q = `
        SELECT id, theme, comic_title, panels, created_at
        FROM   comic
        ORDER  BY created_at DESC`
	var rows []Record
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list comics", err)
	}
	return rows, nil
}

// ArchiveStore is the deleted-record repository.
type ArchiveStore struct{ db *sqlx.DB }

// NewArchiveStore returns an ArchiveStore bound to db.
func NewArchiveStore(db *sqlx.DB) *ArchiveStore { return &ArchiveStore{db: db} }

// Insert persists an archived comic.  DeletedAt defaults to now.
func (s *ArchiveStore) Insert(ctx context.Context, a Archived) (Archived, error) {
	if a.DeletedAt.IsZero() {
		a.DeletedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO deleted_comic
               (original_id, theme, comic_title, panels, created_at, deleted_at)
        VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		a.OriginalID, a.Theme, a.ComicTitle, a.Panels, a.CreatedAt, a.DeletedAt)
	if err != nil {
		return Archived{}, fault.Store("insert deleted comic", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Archived{}, fault.Store("insert deleted comic id", err)
	}
	a.ID = uint64(id)
	return a, nil
}

// GetByID fetches a single archived comic.
func (s *ArchiveStore) GetByID(ctx context.Context, id uint64) (Archived, error) {
	const q = `
        SELECT id, original_id, theme, comic_title, panels, created_at, deleted_at
        FROM   deleted_comic
        WHERE  id = ?`
	var a Archived
	if err := s.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Archived{}, fault.NotFoundf("comic %d is not in the archive", id)
		}
		return Archived{}, fault.Store("get deleted comic", err)
	}
	return a, nil
}

// DeleteByID removes an archived comic (restore or purge).
func (s *ArchiveStore) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deleted_comic WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete deleted comic", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("comic %d is not in the archive", id)
	}
	return nil
}

// ListAll returns every archived comic, most recently deleted first.
func (s *ArchiveStore) ListAll(ctx context.Context) ([]Archived, error) {
	const q = `
        SELECT id, original_id, theme, comic_title, panels, created_at, deleted_at
        FROM   deleted_comic
        ORDER  BY deleted_at DESC`
	var rows []Archived
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list deleted comics", err)
	}
	return rows, nil
}
