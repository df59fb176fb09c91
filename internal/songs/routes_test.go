// internal/songs/routes_test.go
//
// Run: go test ./internal/songs -v

package songs

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/spotify"
)

func TestAddSongRequiresImageURL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// No SQL expectations: an incomplete song must never reach the store.
	r := Routes(sqlx.NewDb(db, "sqlmock"), spotify.New("id", "secret"))

	req := httptest.NewRequest(http.MethodPost, "/addsong", strings.NewReader(
		`{"spotifyId":"abc","title":"Yellow","artist":"Coldplay","addedBy":"Sam"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "imageUrl") {
		t.Fatalf("error does not name the missing field: %s", rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("store was touched: %v", err)
	}
}
