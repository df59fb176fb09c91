// internal/web/respond.go
//
// JSON response helpers for the HTTP facade.
//
// Context
// -------
// Handlers never write status codes or error bodies themselves.  They build
// a payload and call JSON, or bubble a fault-classified error up to Err,
// which maps it to a status plus a `{ "message": ... }` body in one place.
// 5xx causes are logged here with their full chain; clients only ever see
// the safe message.
//
// Notes
// -----
// • Path ids are numeric.  An unparseable id can never match a row, so ID
//   reports it as NotFound rather than a validation error.
// • Oxford commas, two spaces after periods.
package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/keepsake/internal/fault"
)

// JSON writes payload with the given status.  Encoding failures are logged;
// by then the header is already committed, so nothing else can be done.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.S().Errorw("response encode failed", "err", err)
	}
}

// Message writes a bare confirmation body.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Err maps err through the fault taxonomy and writes the error body.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	status := fault.Status(err)
	if status >= http.StatusInternalServerError {
		zap.S().Errorw("request failed",
			"method", r.Method, "path", r.URL.Path, "err", err)
	}
	Message(w, status, fault.Message(err))
}

// ID extracts the {id} route parameter as uint64.
func ID(r *http.Request) (uint64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fault.NotFoundf("no record with id %q", raw)
	}
	return id, nil
}
