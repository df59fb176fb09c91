// internal/memories/routes_test.go
//
// Run: go test ./internal/memories -v

package memories

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/fault"
)

func TestParseDateAcceptsBothLayouts(t *testing.T) {
	d, err := parseDate("2025-02-14")
	if err != nil {
		t.Fatalf("bare day: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.February || d.Day() != 14 {
		t.Fatalf("parsed = %v", d)
	}

	if _, err := parseDate("2025-02-14T18:30:00Z"); err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := parseDate("the day we met")
	if fault.KindOf(err) != fault.KindValidation {
		t.Fatalf("kind = %v, want Validation", fault.KindOf(err))
	}
}

func TestAddMemoryRejectsBadDateBeforeStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// No SQL expectations: a bad date must never reach the store.
	r := Routes(sqlx.NewDb(db, "sqlmock"))

	req := httptest.NewRequest(http.MethodPost, "/add-memory", strings.NewReader(
		`{"title":"First date","description":"Lake walk","date":"not a date","addedBy":"Sam"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("store was touched: %v", err)
	}
}
