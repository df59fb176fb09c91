// internal/gallery/repository.go
//
// sqlx repositories for the `photo` and `deleted_photo` tables.  The image
// column is a LONGBLOB; both stores read and write it whole.

package gallery

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
	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO photo (caption, image, content_type, uploaded_by, uploaded_at)
        VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		rec.Caption, rec.Image, rec.ContentType, rec.UploadedBy, rec.UploadedAt)
	if err != nil {
		return Record{}, fault.Store("insert photo", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fault.Store("insert photo id", err)
	}
	rec.ID = uint64(id)
	return rec, nil
}

// GetByID fetches a single active photo, bytes included.
func (s *Store) GetByID(ctx context.Context, id uint64) (Record, error) {
	const q = `
        SELECT id, caption, image, content_type, uploaded_by, uploaded_at
        FROM   photo
        WHERE  id = ?`
	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fault.NotFoundf("photo %d not found", id)
		}
		return Record{}, fault.Store("get photo", err)
	}
	return rec, nil
}

// DeleteByID removes an active photo.
func (s *Store) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM photo WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete photo", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("photo %d not found", id)
	}
	return nil
}

// ListAll returns every active photo, newest upload first.
func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	const q = `
        SELECT id, caption, image, content_type, uploaded_by, uploaded_at
        FROM   photo
        ORDER  BY uploaded_at DESC`
	var rows []Record
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list photos", err)
	}
	return rows, nil
}

// ArchiveStore is the deleted-record repository.
type ArchiveStore struct{ db *sqlx.DB }

// NewArchiveStore returns an ArchiveStore bound to db.
func NewArchiveStore(db *sqlx.DB) *ArchiveStore { return &ArchiveStore{db: db} }

// Insert persists an archived photo.  DeletedAt defaults to now.
func (s *ArchiveStore) Insert(ctx context.Context, a Archived) (Archived, error) {
	if a.DeletedAt.IsZero() {
		a.DeletedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO deleted_photo
               (original_id, caption, image, content_type, uploaded_by, uploaded_at, deleted_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		a.OriginalID, a.Caption, a.Image, a.ContentType, a.UploadedBy, a.UploadedAt, a.DeletedAt)
	if err != nil {
		return Archived{}, fault.Store("insert deleted photo", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Archived{}, fault.Store("insert deleted photo id", err)
	}
	a.ID = uint64(id)
	return a, nil
}

// GetByID fetches a single archived photo.
func (s *ArchiveStore) GetByID(ctx context.Context, id uint64) (Archived, error) {
	const q = `
        SELECT id, original_id, caption, image, content_type, uploaded_by, uploaded_at, deleted_at
        FROM   deleted_photo
        WHERE  id = ?`
	var a Archived
	if err := s.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Archived{}, fault.NotFoundf("photo %d is not in the archive", id)
		}
		return Archived{}, fault.Store("get deleted photo", err)
	}
	return a, nil
}

// DeleteByID removes an archived photo (restore or purge).
func (s *ArchiveStore) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deleted_photo WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete deleted photo", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("photo %d is not in the archive", id)
	}
	return nil
}

// ListAll returns every archived photo, most recently deleted first.
func (s *ArchiveStore) ListAll(ctx context.Context) ([]Archived, error) {
	const q = `
        SELECT id, original_id, caption, image, content_type, uploaded_by, uploaded_at, deleted_at
        FROM   deleted_photo
        ORDER  BY deleted_at DESC`
	var rows []Archived
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list deleted photos", err)
	}
	return rows, nil
}
