// internal/comics/routes.go
//
// HTTP handlers for couple comics, mounted at /couple-comics.
//
// POST /generate asks the generator for a four-panel strip in strict JSON,
// validates the shape, and persists the comic in one step.

package comics

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/fault"
	"github.com/yanizio/keepsake/internal/genai"
	"github.com/yanizio/keepsake/internal/web"
)

const systemInstruction = "You are a creative writer specializing in " +
	"generating sweet, short, four-panel comic strips about a loving " +
	"couple.  The comic MUST revolve around the provided theme and be " +
	"highly romantic and cute.  Your output MUST be a single JSON object."

type generateReq struct {
	Theme string `json:"theme" validate:"required"`
}

// generated is the JSON shape the generator must produce.
type generated struct {
	ComicTitle string  `json:"comicTitle"`
	Panels     []Panel `json:"panels"`
}

// Routes builds the /couple-comics router.
func Routes(db *sqlx.DB, gen *genai.Client) chi.Router {
	store := NewStore(db)
	mgr := NewManager(db)

	r := chi.NewRouter()

	r.Post("/generate", func(w http.ResponseWriter, req *http.Request) {
		var in generateReq
		if err := web.DecodeJSON(req, &in); err != nil {
			web.Err(w, req, err)
			return
		}

		prompt := fmt.Sprintf("Generate a short comic based on the theme: "+
			"%q.  The output JSON MUST contain two keys: 1) \"comicTitle\" "+
			"(a short, catchy title) and 2) \"panels\" (an array of 4 "+
			"objects).  Each object in the \"panels\" array MUST have three "+
			"keys: \"panelNumber\" (1-4), \"setting\" (a brief description "+
			"of the scene), and \"dialogue\" (the spoken text).  DO NOT "+
			"include any text outside the JSON object.", in.Theme)

		var out generated
		if err := gen.GenerateJSON(req.Context(), systemInstruction, prompt, 0.8, &out); err != nil {
			web.Err(w, req, err)
			return
		}
		if out.ComicTitle == "" || len(out.Panels) == 0 {
			web.Err(w, req, fault.Upstream("generator returned an incomplete comic", nil))
			return
		}

		rec, err := store.Insert(req.Context(), Record{
			Theme:      in.Theme,
			ComicTitle: out.ComicTitle,
			Panels:     out.Panels,
		})
		if err != nil {
			web.Err(w, req, err)
			return
		}
		web.JSON(w, http.StatusCreated, map[string]any{
			"message": "Comic generated and saved.",
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
		Deleted: "/view-all-deleted-comics",
	})
	return r
}
