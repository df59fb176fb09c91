package memories

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/lifecycle"
)

// Record mirrors one row in the `memory` table.  Date is when the memory
// happened; CreatedAt is when it was written down.  Both survive archive
// and restore untouched.
type Record struct {
	ID          uint64    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Date        time.Time `db:"date" json:"date"`
	AddedBy     string    `db:"added_by" json:"addedBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Archived mirrors one row in the `deleted_memory` table.
type Archived struct {
	ID          uint64    `db:"id" json:"id"`
	OriginalID  uint64    `db:"original_id" json:"originalId"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Date        time.Time `db:"date" json:"date"`
	AddedBy     string    `db:"added_by" json:"addedBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	DeletedAt   time.Time `db:"deleted_at" json:"deletedAt"`
}

type mapper struct{}

func (mapper) Archive(r Record, deletedAt time.Time) Archived {
	return Archived{
		OriginalID:  r.ID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		AddedBy:     r.AddedBy,
		CreatedAt:   r.CreatedAt,
		DeletedAt:   deletedAt,
	}
}

func (mapper) Activate(a Archived) Record {
	return Record{
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date,
		AddedBy:     a.AddedBy,
		CreatedAt:   a.CreatedAt,
	}
}

// NewManager wires the lifecycle manager for memories.
func NewManager(db *sqlx.DB) *lifecycle.Manager[Record, Archived] {
	return lifecycle.New[Record, Archived]("memory", NewStore(db), NewArchiveStore(db), mapper{})
}
