package songs

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/lifecycle"
)

// Record mirrors one row in the `song` table.  SpotifyID is unique among
// active songs only; the archive keyspace places no constraint on it, so a
// song can be re-added after it has been soft-deleted.
type Record struct {
	ID        uint64    `db:"id" json:"id"`
	SpotifyID string    `db:"spotify_id" json:"spotifyId"`
	Title     string    `db:"title" json:"title"`
	Artist    string    `db:"artist" json:"artist"`
	ImageURL  string    `db:"image_url" json:"imageUrl"`
	AddedBy   string    `db:"added_by" json:"addedBy"`
	AddedAt   time.Time `db:"added_at" json:"addedAt"`
}

// Archived mirrors one row in the `deleted_song` table.
type Archived struct {
	ID         uint64    `db:"id" json:"id"`
	OriginalID uint64    `db:"original_id" json:"originalId"`
	SpotifyID  string    `db:"spotify_id" json:"spotifyId"`
	Title      string    `db:"title" json:"title"`
	Artist     string    `db:"artist" json:"artist"`
	ImageURL   string    `db:"image_url" json:"imageUrl"`
	AddedBy    string    `db:"added_by" json:"addedBy"`
	AddedAt    time.Time `db:"added_at" json:"addedAt"`
	DeletedAt  time.Time `db:"deleted_at" json:"deletedAt"`
}

type mapper struct{}

func (mapper) Archive(r Record, deletedAt time.Time) Archived {
	return Archived{
		OriginalID: r.ID,
		SpotifyID:  r.SpotifyID,
		Title:      r.Title,
		Artist:     r.Artist,
		ImageURL:   r.ImageURL,
		AddedBy:    r.AddedBy,
		AddedAt:    r.AddedAt,
		DeletedAt:  deletedAt,
	}
}

func (mapper) Activate(a Archived) Record {
	return Record{
		SpotifyID: a.SpotifyID,
		Title:     a.Title,
		Artist:    a.Artist,
		ImageURL:  a.ImageURL,
		AddedBy:   a.AddedBy,
		AddedAt:   a.AddedAt,
	}
}

// NewManager wires the lifecycle manager for shared songs.
func NewManager(db *sqlx.DB) *lifecycle.Manager[Record, Archived] {
	return lifecycle.New[Record, Archived]("song", NewStore(db), NewArchiveStore(db), mapper{})
}
