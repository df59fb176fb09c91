// internal/muse/routes.go
//
// HTTP handlers for mood muse entries, mounted at /mood-muse.
//
// POST /generate asks the generator for a short story or poem matching the
// given mood, persists the result, and returns the saved entry.

package muse

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/genai"
	"github.com/yanizio/keepsake/internal/web"
)

const systemInstruction = "You are a warm, romantic, and encouraging " +
	"storyteller and poet writing for a deeply loved partner.  Your content " +
	"should be sweet, personalized, and comforting, reflecting the mood " +
	"provided.  Use modern, engaging language."

type generateReq struct {
	Mood       string `json:"mood" validate:"required"`
	PromptType string `json:"promptType" validate:"required,oneof=Story Poem"`
}

// Routes builds the /mood-muse router.
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

		prompt := fmt.Sprintf("Write a short, beautiful, and romantic %s "+
			"(about 5-7 lines) for my partner.  The content should revolve "+
			"around the theme of our relationship, love, and comfort, and "+
			"match their current mood, which is: %s.  Title the piece at the "+
			"beginning.", in.PromptType, in.Mood)

		text, err := gen.GenerateText(req.Context(), systemInstruction, prompt, 0.8)
		if err != nil {
			web.Err(w, req, err)
			return
		}

		rec, err := store.Insert(req.Context(), Record{
			Mood:             in.Mood,
			PromptType:       in.PromptType,
			GeneratedContent: text,
		})
		if err != nil {
			web.Err(w, req, err)
			return
		}
		web.JSON(w, http.StatusCreated, map[string]any{
			"message": "Content generated and saved.",
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
		Deleted: "/view-all-deleted-entries",
	})
	return r
}
