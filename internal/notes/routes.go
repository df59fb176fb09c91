// internal/notes/routes.go
//
// HTTP handlers for daily notes, mounted at /daily-notes.

package notes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/web"
)

type createReq struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	MadeBy  string `json:"madeby" validate:"required"`
}

// Routes builds the /daily-notes router.
func Routes(db *sqlx.DB) chi.Router {
	store := NewStore(db)
	mgr := NewManager(db)

	r := chi.NewRouter()

	r.Post("/add", func(w http.ResponseWriter, req *http.Request) {
		var in createReq
		if err := web.DecodeJSON(req, &in); err != nil {
			web.Err(w, req, err)
			return
		}
		rec, err := store.Insert(req.Context(), Record{
			Title:   in.Title,
			Content: in.Content,
			MadeBy:  in.MadeBy,
		})
		if err != nil {
			web.Err(w, req, err)
			return
		}
		web.JSON(w, http.StatusCreated, map[string]any{
			"message": "New daily note added.",
			"item":    rec,
		})
	})

	r.Get("/view", func(w http.ResponseWriter, req *http.Request) {
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
		Delete:  "/delete/{id}",
		Deleted: "/view-all-deleted-notes",
	})
	return r
}
