// internal/quiz/routes_test.go
//
// Run: go test ./internal/quiz -v

package quiz

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/genai"
)

func TestSaveAnswerRequiresCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// No SQL expectations: an incomplete round must never reach the store.
	r := Routes(sqlx.NewDb(db, "sqlmock"), genai.New("key", ""))

	req := httptest.NewRequest(http.MethodPost, "/save-answer", strings.NewReader(
		`{"question":"Where was our first date?","correctAnswer":"The lake"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "category") {
		t.Fatalf("error does not name the missing field: %s", rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("store was touched: %v", err)
	}
}
