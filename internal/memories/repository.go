// internal/memories/repository.go
//
// sqlx repositories for the `memory` and `deleted_memory` tables.

package memories

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
        INSERT INTO memory (title, description, date, added_by, created_at)
        VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		rec.Title, rec.Description, rec.Date, rec.AddedBy, rec.CreatedAt)
	if err != nil {
		return Record{}, fault.Store("insert memory", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fault.Store("insert memory id", err)
	}
	rec.ID = uint64(id)
	return rec, nil
}

// GetByID fetches a single active memory.
func (s *Store) GetByID(ctx context.Context, id uint64) (Record, error) {
	const q = `
        SELECT id, title, description, date, added_by, created_at
        FROM   memory
        WHERE  id = ?`
	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fault.NotFoundf("memory %d not found", id)
		}
		return Record{}, fault.Store("get memory", err)
	}
	return rec, nil
}

// DeleteByID removes an active memory.
func (s *Store) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM memory WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete memory", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("memory %d not found", id)
	}
	return nil
}

// ListAll returns every active memory, ordered by the date the memory
// happened, newest first.
func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	const q = `
        SELECT id, title, description, date, added_by, created_at
        FROM   memory
        ORDER  BY date DESC`
	var rows []Record
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list memories", err)
	}
	return rows, nil
}

// ArchiveStore is the deleted-record repository.
type ArchiveStore struct{ db *sqlx.DB }

// NewArchiveStore returns an ArchiveStore bound to db.
func NewArchiveStore(db *sqlx.DB) *ArchiveStore { return &ArchiveStore{db: db} }

// Insert persists an archived memory.  DeletedAt defaults to now.
func (s *ArchiveStore) Insert(ctx context.Context, a Archived) (Archived, error) {
	if a.DeletedAt.IsZero() {
		a.DeletedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO deleted_memory
               (original_id, title, description, date, added_by, created_at, deleted_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		a.OriginalID, a.Title, a.Description, a.Date, a.AddedBy, a.CreatedAt, a.DeletedAt)
	if err != nil {
		return Archived{}, fault.Store("insert deleted memory", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Archived{}, fault.Store("insert deleted memory id", err)
	}
	a.ID = uint64(id)
	return a, nil
}

// GetByID fetches a single archived memory.
func (s *ArchiveStore) GetByID(ctx context.Context, id uint64) (Archived, error) {
	const q = `
        SELECT id, original_id, title, description, date, added_by, created_at, deleted_at
        FROM   deleted_memory
        WHERE  id = ?`
	var a Archived
	if err := s.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Archived{}, fault.NotFoundf("memory %d is not in the archive", id)
		}
		return Archived{}, fault.Store("get deleted memory", err)
	}
	return a, nil
}

// DeleteByID removes an archived memory (restore or purge).
func (s *ArchiveStore) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deleted_memory WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete deleted memory", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("memory %d is not in the archive", id)
	}
	return nil
}

// ListAll returns every archived memory, most recently deleted first.
func (s *ArchiveStore) ListAll(ctx context.Context) ([]Archived, error) {
	const q = `
        SELECT id, original_id, title, description, date, added_by, created_at, deleted_at
        FROM   deleted_memory
        ORDER  BY deleted_at DESC`
	var rows []Archived
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list deleted memories", err)
	}
	return rows, nil
}
