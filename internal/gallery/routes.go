// internal/gallery/routes.go
//
// HTTP handlers for the photo gallery, mounted at /our-gallery.
//
// Upload is multipart (field `image` plus caption and uploadedBy); view
// responses embed each photo as a base64 data URI, so the frontend never
// needs a separate blob fetch.

package gallery

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/fault"
	"github.com/yanizio/keepsake/internal/web"
)

// maxUploadBytes caps a single photo at 10 MB.
const maxUploadBytes = 10 << 20

// photoView is the client-facing shape of an active photo.
type photoView struct {
	ID         uint64    `json:"id"`
	Caption    string    `json:"caption"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
	ImageURL   string    `json:"imageUrl"`
}

// deletedPhotoView adds the archive provenance fields.
type deletedPhotoView struct {
	ID         uint64    `json:"id"`
	OriginalID uint64    `json:"originalId"`
	Caption    string    `json:"caption"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
	DeletedAt  time.Time `json:"deletedAt"`
	ImageURL   string    `json:"imageUrl"`
}

// Routes builds the /our-gallery router.
func Routes(db *sqlx.DB) chi.Router {
	store := NewStore(db)
	mgr := NewManager(db)

	r := chi.NewRouter()

	r.Post("/upload-photo", func(w http.ResponseWriter, req *http.Request) {
		req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
		if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
			web.Err(w, req, fault.Validationf("image upload is missing or too large"))
			return
		}

		file, header, err := req.FormFile("image")
		if err != nil {
			web.Err(w, req, fault.Validationf("no image file provided"))
			return
		}
		defer file.Close()

		uploadedBy := req.FormValue("uploadedBy")
		if uploadedBy == "" {
			web.Err(w, req, fault.Validationf("uploadedBy is required"))
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			web.Err(w, req, fault.Store("read uploaded image", err))
			return
		}

		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			web.Err(w, req, fault.Validationf("uploaded file is not an image"))
			return
		}

		caption := req.FormValue("caption")
		if caption == "" {
			caption = DefaultCaption
		}

		rec, err := store.Insert(req.Context(), Record{
			Caption:     caption,
			Image:       data,
			ContentType: contentType,
			UploadedBy:  uploadedBy,
		})
		if err != nil {
			web.Err(w, req, err)
			return
		}

		// Metadata only; the bytes are huge and the client already has them.
		web.JSON(w, http.StatusCreated, map[string]any{
			"message": "Photo saved to the gallery.",
			"item":    map[string]any{"id": rec.ID, "caption": rec.Caption},
		})
	})

	r.Get("/view-gallery", func(w http.ResponseWriter, req *http.Request) {
		rows, err := store.ListAll(req.Context())
		if err != nil {
			web.Err(w, req, err)
			return
		}
		views := make([]photoView, 0, len(rows))
		for _, p := range rows {
			views = append(views, photoView{
				ID:         p.ID,
				Caption:    p.Caption,
				UploadedBy: p.UploadedBy,
				UploadedAt: p.UploadedAt,
				ImageURL:   DataURI(p.ContentType, p.Image),
			})
		}
		web.JSON(w, http.StatusOK, map[string]any{"items": views})
	})

	web.MountArchive(r, mgr, web.ArchivePaths{
		Delete:  "/delete-photo/{id}",
		Deleted: "/view-all-deleted-photos",
	}, web.WithDeletedView(func(items []Archived) any {
		views := make([]deletedPhotoView, 0, len(items))
		for _, a := range items {
			views = append(views, deletedPhotoView{
				ID:         a.ID,
				OriginalID: a.OriginalID,
				Caption:    a.Caption,
				UploadedBy: a.UploadedBy,
				UploadedAt: a.UploadedAt,
				DeletedAt:  a.DeletedAt,
				ImageURL:   DataURI(a.ContentType, a.Image),
			})
		}
		return views
	}))
	return r
}
