// internal/gallery/model_test.go
//
// Run: go test ./internal/gallery -v

package gallery

import (
	"strings"
	"testing"
	"time"
)

func TestDataURIEmbedsContentTypeAndBytes(t *testing.T) {
	got := DataURI("image/png", []byte{0x89, 'P', 'N', 'G'})
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Fatalf("prefix missing: %q", got)
	}
	if got != "data:image/png;base64,iVBORw==" {
		t.Fatalf("uri = %q", got)
	}
}

func TestMapperRoundTripKeepsImageBytes(t *testing.T) {
	rec := Record{
		ID:          3,
		Caption:     "Beach day",
		Image:       []byte{1, 2, 3, 4},
		ContentType: "image/jpeg",
		UploadedBy:  "Alex",
		UploadedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	deletedAt := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)

	var m mapper
	arch := m.Archive(rec, deletedAt)
	if arch.OriginalID != 3 || string(arch.Image) != string(rec.Image) {
		t.Fatalf("archive lost fields: %+v", arch)
	}
	if !arch.DeletedAt.Equal(deletedAt) {
		t.Fatalf("deletedAt = %v", arch.DeletedAt)
	}

	back := m.Activate(arch)
	if back.ID != 0 {
		t.Fatalf("restored record carries an id before insert")
	}
	if back.Caption != rec.Caption || string(back.Image) != string(rec.Image) ||
		back.ContentType != rec.ContentType || !back.UploadedAt.Equal(rec.UploadedAt) {
		t.Fatalf("restore lost fields: %+v", back)
	}
}
