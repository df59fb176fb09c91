package muse

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/lifecycle"
)

// Record mirrors one row in the `muse_entry` table.  PromptType is
// "Story" or "Poem"; GeneratedContent is the full generator output.
type Record struct {
	ID               uint64    `db:"id" json:"id"`
	Mood             string    `db:"mood" json:"mood"`
	PromptType       string    `db:"prompt_type" json:"promptType"`
	GeneratedContent string    `db:"generated_content" json:"generatedContent"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// Archived mirrors one row in the `deleted_muse_entry` table.
type Archived struct {
	ID               uint64    `db:"id" json:"id"`
	OriginalID       uint64    `db:"original_id" json:"originalId"`
	Mood             string    `db:"mood" json:"mood"`
	PromptType       string    `db:"prompt_type" json:"promptType"`
	GeneratedContent string    `db:"generated_content" json:"generatedContent"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	DeletedAt        time.Time `db:"deleted_at" json:"deletedAt"`
}

type mapper struct{}

func (mapper) Archive(r Record, deletedAt time.Time) Archived {
	return Archived{
		OriginalID:       r.ID,
		Mood:             r.Mood,
		PromptType:       r.PromptType,
		GeneratedContent: r.GeneratedContent,
		CreatedAt:        r.CreatedAt,
		DeletedAt:        deletedAt,
	}
}

func (mapper) Activate(a Archived) Record {
	return Record{
		Mood:             a.Mood,
		PromptType:       a.PromptType,
		GeneratedContent: a.GeneratedContent,
		CreatedAt:        a.CreatedAt,
	}
}

// NewManager wires the lifecycle manager for mood muse entries.
func NewManager(db *sqlx.DB) *lifecycle.Manager[Record, Archived] {
	return lifecycle.New[Record, Archived]("entry", NewStore(db), NewArchiveStore(db), mapper{})
}
