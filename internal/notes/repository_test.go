// internal/notes/repository_test.go
//
// Unit-tests for the note repositories using sqlmock.
//
// Run: go test ./internal/notes -v

package notes

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/fault"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestInsertAssignsIDAndStampsCreatedAt(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db)

	mock.ExpectExec("INSERT INTO note").
		WithArgs("Good morning", "Coffee is on", "Alex", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	rec, err := store.Insert(context.Background(), Record{
		Title:   "Good morning",
		Content: "Coffee is on",
		MadeBy:  "Alex",
	})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if rec.ID != 7 {
		t.Fatalf("id = %d, want 7", rec.ID)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt was not stamped")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestInsertPreservesExistingCreatedAt(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db)

	orig := time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO note").
		WithArgs("Pi day", "3.14", "Sam", orig).
		WillReturnResult(sqlmock.NewResult(8, 1))

	rec, err := store.Insert(context.Background(), Record{
		Title:     "Pi day",
		Content:   "3.14",
		MadeBy:    "Sam",
		CreatedAt: orig,
	})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if !rec.CreatedAt.Equal(orig) {
		t.Fatalf("CreatedAt = %v, want %v", rec.CreatedAt, orig)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestGetByIDMissingIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT id, title, content, madeby, created_at").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "madeby", "created_at"}))

	_, err := store.GetByID(context.Background(), 99)
	if !fault.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestDeleteByIDZeroRowsIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db)

	mock.ExpectExec("DELETE FROM note").
		WithArgs(uint64(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.DeleteByID(context.Background(), 12); !fault.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestArchiveListAllScansRows(t *testing.T) {
	db, mock := newMock(t)
	store := NewArchiveStore(db)

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	deleted := created.Add(48 * time.Hour)
	mock.ExpectQuery("FROM   deleted_note").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "original_id", "title", "content", "madeby", "created_at", "deleted_at"}).
			AddRow(3, 11, "Old note", "body", "Alex", created, deleted))

	rows, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len = %d, want 1", len(rows))
	}
	a := rows[0]
	if a.OriginalID != 11 || a.Title != "Old note" || !a.DeletedAt.Equal(deleted) {
		t.Fatalf("unexpected row: %#v", a)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
