package comics

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/lifecycle"
)

// Panel is one frame of a generated strip.
type Panel struct {
	PanelNumber int    `json:"panelNumber"`
	Setting     string `json:"setting"`
	Dialogue    string `json:"dialogue"`
}

// Panels is stored as a JSON column; it implements driver.Valuer and
// sql.Scanner so sqlx can read and write it like any other field.
type Panels []Panel

// Value marshals the panels for storage.
func (p Panels) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan unmarshals the stored JSON back into the slice.
func (p *Panels) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil
		return nil
	default:
		return fmt.Errorf("comics: cannot scan %T into Panels", src)
	}
}

// Record mirrors one row in the `comic` table.
type Record struct {
	ID         uint64    `db:"id" json:"id"`
	Theme      string    `db:"theme" json:"theme"`
	ComicTitle string    `db:"comic_title" json:"comicTitle"`
	Panels     Panels    `db:"panels" json:"panels"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Archived mirrors one row in the `deleted_comic` table.
type Archived struct {
	ID         uint64    `db:"id" json:"id"`
	OriginalID uint64    `db:"original_id" json:"originalId"`
	Theme      string    `db:"theme" json:"theme"`
	ComicTitle string    `db:"comic_title" json:"comicTitle"`
	Panels     Panels    `db:"panels" json:"panels"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	DeletedAt  time.Time `db:"deleted_at" json:"deletedAt"`
}

type mapper struct{}

func (mapper) Archive(r Record, deletedAt time.Time) Archived {
	return Archived{
		OriginalID: r.ID,
		Theme:      r.Theme,
		ComicTitle: r.ComicTitle,
		Panels:     r.Panels,
		CreatedAt:  r.CreatedAt,
		DeletedAt:  deletedAt,
	}
}

func (mapper) Activate(a Archived) Record {
	return Record{
		Theme:      a.Theme,
		ComicTitle: a.ComicTitle,
		Panels:     a.Panels,
		CreatedAt:  a.CreatedAt,
	}
}

// NewManager wires the lifecycle manager for comics.
func NewManager(db *sqlx.DB) *lifecycle.Manager[Record, Archived] {
	return lifecycle.New[Record, Archived]("comic", NewStore(db), NewArchiveStore(db), mapper{})
}
