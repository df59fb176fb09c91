package quiz

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/lifecycle"
)

// DefaultCategory is used when a question is saved without one.
const DefaultCategory = "General"

// Record mirrors one row in the `quiz_question` table.
type Record struct {
	ID            uint64    `db:"id" json:"id"`
	Question      string    `db:"question" json:"question"`
	CorrectAnswer string    `db:"correct_answer" json:"correctAnswer"`
	Category      string    `db:"category" json:"category"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// Archived mirrors one row in the `deleted_quiz_question` table.
type Archived struct {
	ID            uint64    `db:"id" json:"id"`
	OriginalID    uint64    `db:"original_id" json:"originalId"`
	Question      string    `db:"question" json:"question"`
	CorrectAnswer string    `db:"correct_answer" json:"correctAnswer"`
	Category      string    `db:"category" json:"category"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	DeletedAt     time.Time `db:"deleted_at" json:"deletedAt"`
}

type mapper struct{}

func (mapper) Archive(r Record, deletedAt time.Time) Archived {
	return Archived{
		OriginalID:    r.ID,
		Question:      r.Question,
		CorrectAnswer: r.CorrectAnswer,
		Category:      r.Category,
		CreatedAt:     r.CreatedAt,
		DeletedAt:     deletedAt,
	}
}

func (mapper) Activate(a Archived) Record {
	return Record{
		Question:      a.Question,
		CorrectAnswer: a.CorrectAnswer,
		Category:      a.Category,
		CreatedAt:     a.CreatedAt,
	}
}

// NewManager wires the lifecycle manager for quiz questions.
func NewManager(db *sqlx.DB) *lifecycle.Manager[Record, Archived] {
	return lifecycle.New[Record, Archived]("question", NewStore(db), NewArchiveStore(db), mapper{})
}
