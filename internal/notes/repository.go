// internal/notes/repository.go
//
// sqlx repositories for the `note` and `deleted_note` tables.
//
// Both stores translate sql.ErrNoRows and zero-row deletes into
// fault.NotFound so the lifecycle manager and handlers never inspect
// driver errors themselves.

package notes

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

// Insert persists rec and returns it with the assigned id.  A zero
// CreatedAt is stamped with the current time; a non-zero one (restore
// path) is written through unchanged.
func (s *Store) Insert(ctx context.Context, rec Record) (Record, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO note (title, content, madeby, created_at)
        VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, rec.Title, rec.Content, rec.MadeBy, rec.CreatedAt)
	if err != nil {
		return Record{}, fault.Store("insert note", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fault.Store("insert note id", err)
	}
	rec.ID = uint64(id)
	return rec, nil
}

// GetByID fetches a single active note.
func (s *Store) GetByID(ctx context.Context, id uint64) (Record, error) {
	const q = `
        SELECT id, title, content, madeby, created_at
        FROM   note
        WHERE  id = ?`
	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fault.NotFoundf("note %d not found", id)
		}
		return Record{}, fault.Store("get note", err)
	}
	return rec, nil
}

// DeleteByID removes an active note.  Zero rows affected → NotFound.
func (s *Store) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM note WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete note", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("note %d not found", id)
	}
	return nil
}

// ListAll returns every active note, newest first.
func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	const q = `
        SELECT id, title, content, madeby, created_at
        FROM   note
        ORDER  BY created_at DESC`
	var rows []Record
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list notes", err)
	}
	return rows, nil
}

// ArchiveStore is the deleted-record repository.
type ArchiveStore struct{ db *sqlx.DB }

// NewArchiveStore returns an ArchiveStore bound to db.
func NewArchiveStore(db *sqlx.DB) *ArchiveStore { return &ArchiveStore{db: db} }

// Insert persists an archived note.  DeletedAt defaults to now.
func (s *ArchiveStore) Insert(ctx context.Context, a Archived) (Archived, error) {
	if a.DeletedAt.IsZero() {
		a.DeletedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO deleted_note (original_id, title, content, madeby, created_at, deleted_at)
        VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		a.OriginalID, a.Title, a.Content, a.MadeBy, a.CreatedAt, a.DeletedAt)
	if err != nil {
		return Archived{}, fault.Store("insert deleted note", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Archived{}, fault.Store("insert deleted note id", err)
	}
	a.ID = uint64(id)
	return a, nil
}

// GetByID fetches a single archived note.
func (s *ArchiveStore) GetByID(ctx context.Context, id uint64) (Archived, error) {
	const q = `
        SELECT id, original_id, title, content, madeby, created_at, deleted_at
        FROM   deleted_note
        WHERE  id = ?`
	var a Archived
	if err := s.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Archived{}, fault.NotFoundf("note %d is not in the archive", id)
		}
		return Archived{}, fault.Store("get deleted note", err)
	}
	return a, nil
}

// DeleteByID removes an archived note (restore or purge).
func (s *ArchiveStore) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deleted_note WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete deleted note", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("note %d is not in the archive", id)
	}
	return nil
}

// ListAll returns every archived note, most recently deleted first.
func (s *ArchiveStore) ListAll(ctx context.Context) ([]Archived, error) {
	const q = `
        SELECT id, original_id, title, content, madeby, created_at, deleted_at
        FROM   deleted_note
        ORDER  BY deleted_at DESC`
	var rows []Archived
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list deleted notes", err)
	}
	return rows, nil
}
