// internal/web/web_test.go
//
// Tests for the HTTP facade helpers: fault-to-status mapping, id parsing,
// body validation, and the generic archive route group.
//
// Run: go test ./internal/web -v

package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/yanizio/keepsake/internal/fault"
	"github.com/yanizio/keepsake/internal/lifecycle"
)

/*──────────────────────────── respond helpers ──────────────────────────────*/

func TestErrMapsNotFoundTo404(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/daily-notes/view", nil)

	Err(rr, req, fault.NotFoundf("note 9 not found"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "note 9 not found" {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestErrHidesStoreDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/daily-notes/view", nil)

	Err(rr, req, fault.Store("list notes",
		context.DeadlineExceeded))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "deadline") {
		t.Fatalf("internal detail leaked to the client: %s", rr.Body.String())
	}
}

func TestIDRejectsNonNumericAsNotFound(t *testing.T) {
	for _, raw := range []string{"doesnotexist", "0", "-4", ""} {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", raw)
		req := httptest.NewRequest(http.MethodDelete, "/delete/x", nil)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		if _, err := ID(req); !fault.IsNotFound(err) {
			t.Fatalf("id %q: err = %v, want NotFound", raw, err)
		}
	}
}

func TestIDParsesNumeric(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "17")
	req := httptest.NewRequest(http.MethodDelete, "/delete/17", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	id, err := ID(req)
	if err != nil || id != 17 {
		t.Fatalf("got (%d, %v), want (17, nil)", id, err)
	}
}

/*──────────────────────────── body decoding ────────────────────────────────*/

type createNote struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
	MadeBy  string `json:"madeby"  validate:"required"`
}

func TestDecodeJSONReportsSingleMissingField(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/add",
		strings.NewReader(`{"title":"hi","content":"there"}`))

	var dto createNote
	err := DecodeJSON(req, &dto)
	if fault.KindOf(err) != fault.KindValidation {
		t.Fatalf("kind = %v, want Validation", fault.KindOf(err))
	}
	if got := fault.Message(err); got != "madeby is required" {
		t.Fatalf("message = %q", got)
	}
}

func TestDecodeJSONListsAllMissingFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(`{}`))

	var dto createNote
	err := DecodeJSON(req, &dto)
	msg := fault.Message(err)
	if !strings.HasPrefix(msg, "missing required fields:") {
		t.Fatalf("message = %q", msg)
	}
	for _, f := range []string{"title", "content", "madeby"} {
		if !strings.Contains(msg, f) {
			t.Fatalf("message %q does not name %s", msg, f)
		}
	}
}

func TestDecodeJSONRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(`{"title":`))

	var dto createNote
	if err := DecodeJSON(req, &dto); fault.KindOf(err) != fault.KindValidation {
		t.Fatalf("kind = %v, want Validation", fault.KindOf(err))
	}
}

/*──────────────────────────── archive routes ───────────────────────────────*/

type memo struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

type deletedMemo struct {
	ID         uint64    `json:"id"`
	OriginalID uint64    `json:"originalId"`
	Title      string    `json:"title"`
	DeletedAt  time.Time `json:"deletedAt"`
}

type memoStore struct {
	next uint64
	rows map[uint64]memo
}

func (s *memoStore) GetByID(_ context.Context, id uint64) (memo, error) {
	m, ok := s.rows[id]
	if !ok {
		return memo{}, fault.NotFoundf("memo %d not found", id)
	}
	return m, nil
}

func (s *memoStore) Insert(_ context.Context, m memo) (memo, error) {
	s.next++
	m.ID = s.next
	s.rows[m.ID] = m
	return m, nil
}

func (s *memoStore) DeleteByID(_ context.Context, id uint64) error {
	if _, ok := s.rows[id]; !ok {
		return fault.NotFoundf("memo %d not found", id)
	}
	delete(s.rows, id)
	return nil
}

func (s *memoStore) ListAll(_ context.Context) ([]memo, error) {
	out := make([]memo, 0, len(s.rows))
	for _, m := range s.rows {
		out = append(out, m)
	}
	return out, nil
}

type deletedMemoStore struct {
	next uint64
	rows map[uint64]deletedMemo
}

func (s *deletedMemoStore) GetByID(_ context.Context, id uint64) (deletedMemo, error) {
	m, ok := s.rows[id]
	if !ok {
		return deletedMemo{}, fault.NotFoundf("memo %d is not in the archive", id)
	}
	return m, nil
}

func (s *deletedMemoStore) Insert(_ context.Context, m deletedMemo) (deletedMemo, error) {
	s.next++
	m.ID = s.next
	s.rows[m.ID] = m
	return m, nil
}

func (s *deletedMemoStore) DeleteByID(_ context.Context, id uint64) error {
	if _, ok := s.rows[id]; !ok {
		return fault.NotFoundf("memo %d is not in the archive", id)
	}
	delete(s.rows, id)
	return nil
}

func (s *deletedMemoStore) ListAll(_ context.Context) ([]deletedMemo, error) {
	out := make([]deletedMemo, 0, len(s.rows))
	for _, m := range s.rows {
		out = append(out, m)
	}
	return out, nil
}

type memoMapper struct{}

func (memoMapper) Archive(m memo, deletedAt time.Time) deletedMemo {
	return deletedMemo{OriginalID: m.ID, Title: m.Title, DeletedAt: deletedAt}
}

func (memoMapper) Activate(d deletedMemo) memo {
	return memo{Title: d.Title}
}

func newArchiveServer(t *testing.T) (*httptest.Server, *memoStore, *deletedMemoStore) {
	t.Helper()
	active := &memoStore{rows: map[uint64]memo{}}
	archive := &deletedMemoStore{rows: map[uint64]deletedMemo{}}
	mgr := lifecycle.New[memo, deletedMemo]("memo", active, archive, memoMapper{})

	r := chi.NewRouter()
	MountArchive(r, mgr, ArchivePaths{
		Delete:  "/delete/{id}",
		Deleted: "/view-all-deleted",
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, active, archive
}

func TestArchiveGroupSoftDeleteThenListThenRestore(t *testing.T) {
	srv, active, _ := newArchiveServer(t)
	active.Insert(context.Background(), memo{Title: "anniversary"})

	// Soft delete.
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/delete/1", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("soft delete status = %d", res.StatusCode)
	}
	var delBody struct {
		Message     string      `json:"message"`
		DeletedItem deletedMemo `json:"deletedItem"`
	}
	if err := json.NewDecoder(res.Body).Decode(&delBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if delBody.DeletedItem.OriginalID != 1 || delBody.DeletedItem.Title != "anniversary" {
		t.Fatalf("unexpected deletedItem: %+v", delBody.DeletedItem)
	}

	// List deleted.
	res2, err := http.Get(srv.URL + "/view-all-deleted")
	if err != nil {
		t.Fatalf("list deleted: %v", err)
	}
	defer res2.Body.Close()
	var listBody struct {
		DeletedItems []deletedMemo `json:"deletedItems"`
	}
	if err := json.NewDecoder(res2.Body).Decode(&listBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listBody.DeletedItems) != 1 {
		t.Fatalf("deletedItems len = %d, want 1", len(listBody.DeletedItems))
	}

	// Restore.
	res3, err := http.Post(srv.URL+"/restore/1", "application/json", nil)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	defer res3.Body.Close()
	if res3.StatusCode != http.StatusOK {
		t.Fatalf("restore status = %d", res3.StatusCode)
	}
	var restBody struct {
		RestoredItem memo `json:"restoredItem"`
	}
	if err := json.NewDecoder(res3.Body).Decode(&restBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if restBody.RestoredItem.Title != "anniversary" {
		t.Fatalf("unexpected restoredItem: %+v", restBody.RestoredItem)
	}
	if restBody.RestoredItem.ID == 1 {
		t.Fatalf("restored record reused its old id")
	}
}

func TestArchiveGroupEmptyListIsSuccess(t *testing.T) {
	srv, _, _ := newArchiveServer(t)

	res, err := http.Get(srv.URL + "/view-all-deleted")
	if err != nil {
		t.Fatalf("list deleted: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	var body struct {
		DeletedItems []deletedMemo `json:"deletedItems"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.DeletedItems == nil || len(body.DeletedItems) != 0 {
		t.Fatalf("deletedItems = %#v, want empty slice", body.DeletedItems)
	}
}

func TestArchiveGroupPurgeIsPermanent(t *testing.T) {
	srv, active, archive := newArchiveServer(t)
	active.Insert(context.Background(), memo{Title: "oops"})

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/delete/1", nil)
	if _, err := http.DefaultClient.Do(req); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	req2, _ := http.NewRequest(http.MethodDelete, srv.URL+"/permanently-delete/1", nil)
	res, err := http.DefaultClient.Do(req2)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("purge status = %d", res.StatusCode)
	}
	if len(archive.rows) != 0 {
		t.Fatalf("archive still holds %d rows", len(archive.rows))
	}

	// Second purge and restore of the same id both 404.
	res2, _ := http.DefaultClient.Do(req2)
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotFound {
		t.Fatalf("second purge status = %d, want 404", res2.StatusCode)
	}
	res3, _ := http.Post(srv.URL+"/restore/1", "application/json", nil)
	res3.Body.Close()
	if res3.StatusCode != http.StatusNotFound {
		t.Fatalf("restore after purge status = %d, want 404", res3.StatusCode)
	}
}

func TestArchiveGroupUnparseableIDIs404(t *testing.T) {
	srv, _, _ := newArchiveServer(t)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/delete/doesnotexist", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}
