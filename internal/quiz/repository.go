// internal/quiz/repository.go
//
// sqlx repositories for the `quiz_question` and `deleted_quiz_question`
// tables.

package quiz

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
	if rec.Category == "" {
		rec.Category = DefaultCategory
	}
	const q = `
        INSERT INTO quiz_question (question, correct_answer, category, created_at)
        VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		rec.Question, rec.CorrectAnswer, rec.Category, rec.CreatedAt)
	if err != nil {
		return Record{}, fault.Store("insert quiz question", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fault.Store("insert quiz question id", err)
	}
	rec.ID = uint64(id)
	return rec, nil
}

// GetByID fetches a single active question.
func (s *Store) GetByID(ctx context.Context, id uint64) (Record, error) {
	const q = `
        SELECT id, question, correct_answer, category, created_at
        FROM   quiz_question
        WHERE  id = ?`
	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fault.NotFoundf("question %d not found", id)
		}
		return Record{}, fault.Store("get quiz question", err)
	}
	return rec, nil
}

// DeleteByID removes an active question.
func (s *Store) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quiz_question WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete quiz question", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("question %d not found", id)
	}
	return nil
}

// ListAll returns every active question, newest first.
func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	const q = `
        SELECT id, question, correct_answer, category, created_at
        FROM   quiz_question
        ORDER  BY created_at DESC`
	var rows []Record
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list quiz questions", err)
	}
	return rows, nil
}

// ArchiveStore is the deleted-record repository.
type ArchiveStore struct{ db *sqlx.DB }

// NewArchiveStore returns an ArchiveStore bound to db.
func NewArchiveStore(db *sqlx.DB) *ArchiveStore { return &ArchiveStore{db: db} }

// Insert persists an archived question.  DeletedAt defaults to now.
func (s *ArchiveStore) Insert(ctx context.Context, a Archived) (Archived, error) {
	if a.DeletedAt.IsZero() {
		a.DeletedAt = time.Now().UTC()
	}
	const q = `
        INSERT INTO deleted_quiz_question
               (original_id, question, correct_answer, category, created_at, deleted_at)
        VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		a.OriginalID, a.Question, a.CorrectAnswer, a.Category, a.CreatedAt, a.DeletedAt)
	if err != nil {
		return Archived{}, fault.Store("insert deleted quiz question", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Archived{}, fault.Store("insert deleted quiz question id", err)
	}
	a.ID = uint64(id)
	return a, nil
}

// GetByID fetches a single archived question.
func (s *ArchiveStore) GetByID(ctx context.Context, id uint64) (Archived, error) {
	const q = `
        SELECT id, original_id, question, correct_answer, category, created_at, deleted_at
        FROM   deleted_quiz_question
        WHERE  id = ?`
	var a Archived
	if err := s.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Archived{}, fault.NotFoundf("question %d is not in the archive", id)
		}
		return Archived{}, fault.Store("get deleted quiz question", err)
	}
	return a, nil
}

// DeleteByID removes an archived question (restore or purge).
func (s *ArchiveStore) DeleteByID(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deleted_quiz_question WHERE id = ?`, id)
	if err != nil {
		return fault.Store("delete deleted quiz question", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fault.NotFoundf("question %d is not in the archive", id)
	}
	return nil
}

// ListAll returns every archived question, most recently deleted first.
func (s *ArchiveStore) ListAll(ctx context.Context) ([]Archived, error) {
	const q = `
        SELECT id, original_id, question, correct_answer, category, created_at, deleted_at
        FROM   deleted_quiz_question
        ORDER  BY deleted_at DESC`
	var rows []Archived
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fault.Store("list deleted quiz questions", err)
	}
	return rows, nil
}
