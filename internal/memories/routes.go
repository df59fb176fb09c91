// internal/memories/routes.go
//
// HTTP handlers for memories, mounted at /our-memories.

package memories

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/fault"
	"github.com/yanizio/keepsake/internal/web"
)

type createReq struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
	AddedBy     string `json:"addedBy" validate:"required"`
}

// parseDate accepts a bare day or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fault.Validationf("date %q is not a valid date", raw)
}

// Routes builds the /our-memories router.
func Routes(db *sqlx.DB) chi.Router {
	store := NewStore(db)
	mgr := NewManager(db)

	r := chi.NewRouter()

	r.Post("/add-memory", func(w http.ResponseWriter, req *http.Request) {
		var in createReq
		if err := web.DecodeJSON(req, &in); err != nil {
			web.Err(w, req, err)
			return
		}
		date, err := parseDate(in.Date)
		if err != nil {
			web.Err(w, req, err)
			return
		}
		rec, err := store.Insert(req.Context(), Record{
			Title:       in.Title,
			Description: in.Description,
			Date:        date,
			AddedBy:     in.AddedBy,
		})
		if err != nil {
			web.Err(w, req, err)
			return
		}
		web.JSON(w, http.StatusCreated, map[string]any{
			"message": "New memory added.",
			"item":    rec,
		})
	})

	r.Get("/view-memories", func(w http.ResponseWriter, req *http.Request) {
		rows, err := store.ListAll(req.Context())
		if err != nil {
			web.Err(w, req, err)
			return
		}
		if rows == nil {
			rows = []Record{}
		}
		web.JSON(w, http.StatusOK, map[string]any{"items": rows})
	})

	web.MountArchive(r, mgr, web.ArchivePaths{
		Delete:  "/delete-memory/{id}",
		Deleted: "/view-all-deleted-memories",
	})
	return r
}
