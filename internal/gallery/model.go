package gallery

import (
	"encoding/base64"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/keepsake/internal/lifecycle"
)

// DefaultCaption is used when the uploader leaves the caption blank.
const DefaultCaption = "A lovely moment"

// Record mirrors one row in the `photo` table.  Image holds the full file
// bytes; the archive copy carries them byte-for-byte, since no separate
// blob survives once the active row is gone.
type Record struct {
	ID          uint64    `db:"id" json:"id"`
	Caption     string    `db:"caption" json:"caption"`
	Image       []byte    `db:"image" json:"-"`
	ContentType string    `db:"content_type" json:"contentType"`
	UploadedBy  string    `db:"uploaded_by" json:"uploadedBy"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploadedAt"`
}

// Archived mirrors one row in the `deleted_photo` table.
type Archived struct {
	ID          uint64    `db:"id" json:"id"`
	OriginalID  uint64    `db:"original_id" json:"originalId"`
	Caption     string    `db:"caption" json:"caption"`
	Image       []byte    `db:"image" json:"-"`
	ContentType string    `db:"content_type" json:"contentType"`
	UploadedBy  string    `db:"uploaded_by" json:"uploadedBy"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploadedAt"`
	DeletedAt   time.Time `db:"deleted_at" json:"deletedAt"`
}

// DataURI renders the image as a self-describing base64 data URI, so the
// frontend never needs a second round trip for the bytes.
func DataURI(contentType string, image []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(image)
}

type mapper struct{}

func (mapper) Archive(r Record, deletedAt time.Time) Archived {
	return Archived{
		OriginalID:  r.ID,
		Caption:     r.Caption,
		Image:       r.Image,
		ContentType: r.ContentType,
		UploadedBy:  r.UploadedBy,
		UploadedAt:  r.UploadedAt,
		DeletedAt:   deletedAt,
	}
}

func (mapper) Activate(a Archived) Record {
	return Record{
		Caption:     a.Caption,
		Image:       a.Image,
		ContentType: a.ContentType,
		UploadedBy:  a.UploadedBy,
		UploadedAt:  a.UploadedAt,
	}
}

// NewManager wires the lifecycle manager for gallery photos.
func NewManager(db *sqlx.DB) *lifecycle.Manager[Record, Archived] {
	return lifecycle.New[Record, Archived]("photo", NewStore(db), NewArchiveStore(db), mapper{})
}
