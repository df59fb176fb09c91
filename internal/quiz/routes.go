// internal/quiz/routes.go
//
// HTTP handlers for the couple quiz, mounted at /couple-quiz.
//
// Generation and persistence are split: POST /generate returns a fresh
// question without saving anything, and POST /save-answer stores it once
// the partner has actually played the round.

package quiz

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/fault"
	"github.com/yanizio/keepsake/internal/genai"
	"github.com/yanizio/keepsake/internal/web"
)

const systemInstruction = "You are an expert quiz master generating highly " +
	"personalized, sweet, and fun questions for a couple's quiz.  The " +
	"question must be about one partner's preferences, memories, or habits, " +
	"and the response must be formatted strictly as a single JSON object."

type generateReq struct {
	Category string `json:"category" validate:"required"`
}

type saveReq struct {
	Question      string `json:"question" validate:"required"`
	CorrectAnswer string `json:"correctAnswer" validate:"required"`
	Category      string `json:"category" validate:"required"`
}

// generated is the JSON shape the generator must produce.
type generated struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Routes builds the /couple-quiz router.
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

		prompt := fmt.Sprintf("Generate one simple, cute quiz question about "+
			"one partner and the correct answer, based on the category: %s.  "+
			"The question should be easy to answer for the other partner.  "+
			"The output MUST be a JSON object with two keys: \"question\" "+
			"(string) and \"correctAnswer\" (string).  DO NOT include any "+
			"other text or formatting outside the JSON block.", in.Category)

		var out generated
		if err := gen.GenerateJSON(req.Context(), systemInstruction, prompt, 0.9, &out); err != nil {
			web.Err(w, req, err)
			return
		}
		if out.Question == "" || out.CorrectAnswer == "" {
			web.Err(w, req, fault.Upstream("generator returned an incomplete question", nil))
			return
		}

		web.JSON(w, http.StatusOK, map[string]any{
			"message":       "Question generated.",
			"question":      out.Question,
			"correctAnswer": out.CorrectAnswer,
			"category":      in.Category,
		})
	})

	r.Post("/save-answer", func(w http.ResponseWriter, req *http.Request) {
		var in saveReq
		if err := web.DecodeJSON(req, &in); err != nil {
			web.Err(w, req, err)
			return
		}
		rec, err := store.Insert(req.Context(), Record{
			Question:      in.Question,
			CorrectAnswer: in.CorrectAnswer,
			Category:      in.Category,
		})
		if err != nil {
			web.Err(w, req, err)
			return
		}
		web.JSON(w, http.StatusCreated, map[string]any{
			"message": "Question and answer saved.",
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
		Deleted: "/view-all-deleted-quizzes",
	})
	return r
}
