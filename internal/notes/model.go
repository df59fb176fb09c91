package notes

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/lifecycle"
)

// Record mirrors one row in the `note` table.  CreatedAt is assigned at
// insert time and preserved verbatim through archive and restore.
type Record struct {
	ID        uint64    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	MadeBy    string    `db:"madeby" json:"madeby"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Archived mirrors one row in the `deleted_note` table.  OriginalID is a
// historical link only; nothing dereferences it.
type Archived struct {
	ID         uint64    `db:"id" json:"id"`
	OriginalID uint64    `db:"original_id" json:"originalId"`
	Title      string    `db:"title" json:"title"`
	Content    string    `db:"content" json:"content"`
	MadeBy     string    `db:"madeby" json:"madeby"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	DeletedAt  time.Time `db:"deleted_at" json:"deletedAt"`
}

// mapper copies domain fields between the two shapes.
type mapper struct{}

func (mapper) Archive(r Record, deletedAt time.Time) Archived {
	return Archived{
		OriginalID: r.ID,
		Title:      r.Title,
		Content:    r.Content,
		MadeBy:     r.MadeBy,
		CreatedAt:  r.CreatedAt,
		DeletedAt:  deletedAt,
	}
}

func (mapper) Activate(a Archived) Record {
	return Record{
		Title:     a.Title,
		Content:   a.Content,
		MadeBy:    a.MadeBy,
		CreatedAt: a.CreatedAt, // original timestamp, never regenerated
	}
}

// NewManager wires the lifecycle manager for daily notes.
func NewManager(db *sqlx.DB) *lifecycle.Manager[Record, Archived] {
	return lifecycle.New[Record, Archived]("note", NewStore(db), NewArchiveStore(db), mapper{})
}
