// internal/web/archive.go
//
// Generic archive route group.
//
// Context
// -------
// Every content type exposes the same four archive endpoints; only the
// URL spellings differ (the frontend predates the generic manager, so it
// addresses `/view-all-deleted-notes`, `/view-all-deleted-photos`, and so
// on).  MountArchive registers the group once per entity against its
// lifecycle manager, which keeps the handlers themselves out of the entity
// packages entirely.
package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/keepsake/internal/lifecycle"
)

// ArchivePaths names the per-entity URL spellings for the archive group.
type ArchivePaths struct {
	Delete  string // e.g. "/delete/{id}" or "/delete-photo/{id}"
	Deleted string // e.g. "/view-all-deleted-notes"
}

// ArchiveOption tweaks the generic group for one entity.
type ArchiveOption[A any] func(*archiveConfig[A])

type archiveConfig[A any] struct {
	deletedView func([]A) any
}

// WithDeletedView maps archived records to a client-facing shape before
// serialization.  The gallery uses it to embed base64 data URIs.
func WithDeletedView[A any](view func([]A) any) ArchiveOption[A] {
	return func(c *archiveConfig[A]) { c.deletedView = view }
}

// MountArchive registers soft-delete, list-deleted, restore, and purge
// routes for one entity on r.
func MountArchive[R, A any](r chi.Router, m *lifecycle.Manager[R, A], p ArchivePaths, opts ...ArchiveOption[A]) {
	entity := m.Entity()

	var cfg archiveConfig[A]
	for _, opt := range opts {
		opt(&cfg)
	}

	r.Delete(p.Delete, func(w http.ResponseWriter, req *http.Request) {
		id, err := ID(req)
		if err != nil {
			Err(w, req, err)
			return
		}
		arch, err := m.SoftDelete(req.Context(), id)
		if err != nil {
			Err(w, req, err)
			return
		}
		JSON(w, http.StatusOK, map[string]any{
			"message":     fmt.Sprintf("The %s has been moved to the archive.", entity),
			"deletedItem": arch,
		})
	})

	r.Get(p.Deleted, func(w http.ResponseWriter, req *http.Request) {
		items, err := m.Deleted(req.Context())
		if err != nil {
			Err(w, req, err)
			return
		}
		if items == nil {
			items = []A{}
		}
		if cfg.deletedView != nil {
			JSON(w, http.StatusOK, map[string]any{"deletedItems": cfg.deletedView(items)})
			return
		}
		JSON(w, http.StatusOK, map[string]any{"deletedItems": items})
	})

	r.Post("/restore/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := ID(req)
		if err != nil {
			Err(w, req, err)
			return
		}
		rec, err := m.Restore(req.Context(), id)
		if err != nil {
			Err(w, req, err)
			return
		}
		JSON(w, http.StatusOK, map[string]any{
			"message":      fmt.Sprintf("The %s has been restored.", entity),
			"restoredItem": rec,
		})
	})

	r.Delete("/permanently-delete/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := ID(req)
		if err != nil {
			Err(w, req, err)
			return
		}
		if err := m.Purge(req.Context(), id); err != nil {
			Err(w, req, err)
			return
		}
		Message(w, http.StatusOK,
			fmt.Sprintf("The %s has been permanently deleted.", entity))
	})
}
