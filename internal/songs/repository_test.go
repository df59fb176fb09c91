// internal/songs/repository_test.go
//
// Unit-tests for the song repositories using sqlmock, with emphasis on
// duplicate-key handling.
//
// Run: go test ./internal/songs -v

package songs

import (
	"context"
	"errors"
	"testing"

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

func TestInsertDuplicateSpotifyIDIsConflict(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db)

	mock.ExpectExec("INSERT INTO song").
		WillReturnError(errors.New(
			`Error 1062 (23000): Duplicate entry '4uLU6hMC' for key 'uniq_song_spotify_id'`))

	_, err := store.Insert(context.Background(), Record{
		SpotifyID: "4uLU6hMC",
		Title:     "Never Gonna Give You Up",
		Artist:    "Rick Astley",
		AddedBy:   "Sam",
	})
	if fault.KindOf(err) != fault.KindConflict {
		t.Fatalf("kind = %v, want Conflict", fault.KindOf(err))
	}
}

func TestInsertOtherErrorIsStoreFault(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db)

	mock.ExpectExec("INSERT INTO song").
		WillReturnError(errors.New("Error 1205: Lock wait timeout exceeded"))

	_, err := store.Insert(context.Background(), Record{SpotifyID: "x", AddedBy: "Sam"})
	if fault.KindOf(err) == fault.KindConflict {
		t.Fatalf("lock timeout misreported as Conflict")
	}
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestInsertAssignsID(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db)

	mock.ExpectExec("INSERT INTO song").
		WithArgs("abc123", "Yellow", "Coldplay", "https://i.scdn.co/image/x", "Alex", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(4, 1))

	rec, err := store.Insert(context.Background(), Record{
		SpotifyID: "abc123",
		Title:     "Yellow",
		Artist:    "Coldplay",
		ImageURL:  "https://i.scdn.co/image/x",
		AddedBy:   "Alex",
	})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if rec.ID != 4 {
		t.Fatalf("id = %d, want 4", rec.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestArchiveDeleteMissingIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	store := NewArchiveStore(db)

	mock.ExpectExec("DELETE FROM deleted_song").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.DeleteByID(context.Background(), 5); !fault.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}
