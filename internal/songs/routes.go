// internal/songs/routes.go
//
// HTTP handlers for shared songs, mounted at /our-songs.
//
// Besides the usual lifecycle routes, the component exposes GET /search,
// a read-only proxy to the Spotify catalog; nothing from search is
// persisted until the frontend posts the chosen track to /addsong.

package songs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/spotify"
	"github.com/yanizio/keepsake/internal/web"
)

type createReq struct {
	SpotifyID string `json:"spotifyId" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Artist    string `json:"artist" validate:"required"`
	ImageURL  string `json:"imageUrl" validate:"required"`
	AddedBy   string `json:"addedBy" validate:"required"`
}

// Routes builds the /our-songs router.
func Routes(db *sqlx.DB, catalog *spotify.Client) chi.Router {
	store := NewStore(db)
	mgr := NewManager(db)

	r := chi.NewRouter()

	r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
		tracks, err := catalog.Search(req.Context(),
			req.URL.Query().Get("query"), req.URL.Query().Get("artist"))
		if err != nil {
			web.Err(w, req, err)
			return
		}
		web.JSON(w, http.StatusOK, map[string]any{"tracks": tracks})
	})

	r.Post("/addsong", func(w http.ResponseWriter, req *http.Request) {
		var in createReq
		if err := web.DecodeJSON(req, &in); err != nil {
			web.Err(w, req, err)
			return
		}
		rec, err := store.Insert(req.Context(), Record{
			SpotifyID: in.SpotifyID,
			Title:     in.Title,
			Artist:    in.Artist,
			ImageURL:  in.ImageURL,
			AddedBy:   in.AddedBy,
		})
		if err != nil {
			web.Err(w, req, err)
			return
		}
		web.JSON(w, http.StatusCreated, map[string]any{
			"message": "Song added to the shared collection.",
			"item":    rec,
		})
	})

	r.Get("/viewsongs", func(w http.ResponseWriter, req *http.Request) {
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
		Deleted: "/view-all-deleted-songs",
	})
	return r
}
