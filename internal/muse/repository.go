// internal/muse/repository.go
//
// sqlx repositories for the `muse_entry` and `deleted_muse_entry` tables.

package muse

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
        INSERT INTO muse_entry (mood, prompt_type, generated_content, created_at)
        VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		rec.Mood, rec.PromptType, rec.GeneratedContent, rec.CreatedAt)
	if err != nil {
		return Record{}, fault.Store("insert muse entry", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fault.Store("insert muse entry id", err)
	}
	rec.ID = uint64(id)
	return rec, nil
}

// GetByID fetches a single active entry.
func (s *Store) GetByID(ctx context.Context, id uint64) (Record, error) {
	const q = `
        SELECT id, mood, prompt_type, generated_content, created_at
        FROM   muse_entry
        WHERE  id = ?`
	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fault.NotFoundf("entry %d not found", id)
		}
		return Record{}, fault.Store("get muse entry", err)
	}
	return rec, nil
}

// DeleteByID removes an active entry.
func (s *Store) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM muse_entry WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete muse entry", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("entry %d not found", id)
	}
	return nil
}

// ListAll returns every active entry, newest first.
func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	const q = `
        SELECT id, mood, prompt_type, generated_content, created_at
        FROM   muse_entry
        ORDER  BY created_at DESC`
	var rows []Record
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list muse entries", err)
	}
	return rows, nil
}

// ArchiveStore is the deleted-record repository.
type ArchiveStore struct{ db *sqlx.DB }

// NewArchiveStore returns an ArchiveStore bound to db.
func NewArchiveStore(db *sqlx.DB) *ArchiveStore { return &ArchiveStore{db: db} }

// Insert persists an archived entry.  DeletedAt defaults to now.
func (s *ArchiveStore) Insert(ctx context.Context, a Archived) (Archived, error) {
	if a.DeletedAt.IsZero() {
		a.DeletedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO deleted_muse_entry
               (original_id, mood, prompt_type, generated_content, created_at, deleted_at)
        VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		a.OriginalID, a.Mood, a.PromptType, a.GeneratedContent, a.CreatedAt, a.DeletedAt)
	if err != nil {
		return Archived{}, fault.Store("insert deleted muse entry", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Archived{}, fault.Store("insert deleted muse entry id", err)
	}
	a.ID = uint64(id)
	return a, nil
}

// GetByID fetches a single archived entry.
func (s *ArchiveStore) GetByID(ctx context.Context, id uint64) (Archived, error) {
	const q = `
        SELECT id, original_id, mood, prompt_type, generated_content, created_at, deleted_at
        FROM   deleted_muse_entry
        WHERE  id = ?`
	var a Archived
	if err := s.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Archived{}, fault.NotFoundf("entry %d is not in the archive", id)
		}
		return Archived{}, fault.Store("get deleted muse entry", err)
	}
	return a, nil
}

// DeleteByID removes an archived entry (restore or purge).
func (s *ArchiveStore) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deleted_muse_entry WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete deleted muse entry", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("entry %d is not in the archive", id)
	}
	return nil
}

// ListAll returns every archived entry, most recently deleted first.
func (s *ArchiveStore) ListAll(ctx context.Context) ([]Archived, error) {
	const q = `
        SELECT id, original_id, mood, prompt_type, generated_content, created_at, deleted_at
        FROM   deleted_muse_entry
        ORDER  BY deleted_at DESC`
	var rows []Archived
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list deleted muse entries", err)
	}
	return rows, nil
}
