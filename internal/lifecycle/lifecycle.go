// internal/lifecycle/lifecycle.go
//
// Generic archive lifecycle manager.
//
// Context
// -------
// Every content type in Keepsake (notes, songs, memories, photos, muse
// entries, quiz questions, comics) supports the same soft-delete workflow:
// an active record moves into a parallel archive table, can be restored
// back as a new active record, or purged from the archive for good.  The
// manager implements that sequence once; each entity package supplies two
// thin sqlx stores and a field-copy mapper.
//
// Ordering
// --------
// There is no cross-table transaction here.  SoftDelete inserts the archive
// row before deleting the active row, and Restore inserts the active row
// before deleting the archive row, so a crash mid-sequence leaves the
// record duplicated (recoverable) rather than lost.  Concurrent soft
// deletes of the same id may both pass the initial read and insert two
// archive rows; the second caller still fails on the active delete.  This
// is an accepted property of the protocol, not a bug to paper over.
//
// Notes
// -----
// • Stores must return fault.NotFound errors for absent ids, so double
//   purge/restore surfaces as 404 rather than a silent no-op.
// • Oxford commas, two spaces after periods.
package lifecycle

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/keepsake/internal/metrics"
)

// ActiveStore is the slice of an entity repository the manager needs for
// the active side of the lifecycle.
type ActiveStore[R any] interface {
	GetByID(ctx context.Context, id uint64) (R, error)
	Insert(ctx context.Context, rec R) (R, error)
	DeleteByID(ctx context.Context, id uint64) error
	ListAll(ctx context.Context) ([]R, error)
}

// ArchiveStore is the archive-side counterpart.  Insert assigns the archive
// row its own id and defaults DeletedAt to now when unset.
type ArchiveStore[A any] interface {
	GetByID(ctx context.Context, id uint64) (A, error)
	Insert(ctx context.Context, arch A) (A, error)
	DeleteByID(ctx context.Context, id uint64) error
	ListAll(ctx context.Context) ([]A, error)
}

// Mapper copies domain fields between the active and archived shapes.
//
// Archive must carry every domain field verbatim, record the original id,
// and stamp deletedAt.  Activate must rebuild an active record from the
// archived copy, preserving the original creation timestamp, and leave the
// id zero so the store assigns a fresh one.
type Mapper[R, A any] interface {
	Archive(rec R, deletedAt time.Time) A
	Activate(arch A) R
}

// Manager runs the soft-delete, restore, and purge sequences for one
// entity type.  It is stateless and safe for concurrent use.
type Manager[R, A any] struct {
	entity  string
	active  ActiveStore[R]
	archive ArchiveStore[A]
	mapper  Mapper[R, A]
}

// New builds a Manager.  The entity name labels metrics and log lines.
func New[R, A any](entity string, active ActiveStore[R], archive ArchiveStore[A], m Mapper[R, A]) *Manager[R, A] {
	return &Manager[R, A]{entity: entity, active: active, archive: archive, mapper: m}
}

// Entity returns the label the manager was built with.
func (m *Manager[R, A]) Entity() string { return m.entity }

// SoftDelete moves the active record id into the archive and returns the
// new archive record.  Absent id → fault.NotFound, no side effects.
func (m *Manager[R, A]) SoftDelete(ctx context.Context, id uint64) (A, error) {
	var zero A

	rec, err := m.active.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}

	// Archive insert must land before the active delete is issued.
	arch, err := m.archive.Insert(ctx, m.mapper.Archive(rec, time.Now().UTC()))
	if err != nil {
		metrics.LifecycleErrors.WithLabelValues(m.entity, "soft_delete").Inc()
		return zero, err
	}

	if err := m.active.DeleteByID(ctx, id); err != nil {
		// Archive row already committed; record is duplicated, not lost.
		metrics.LifecycleErrors.WithLabelValues(m.entity, "soft_delete").Inc()
		zap.S().Errorw("active delete failed after archive insert",
			"entity", m.entity, "id", id, "err", err)
		return zero, err
	}

	metrics.SoftDeleteTotal.WithLabelValues(m.entity).Inc()
	zap.S().Infow("record archived", "entity", m.entity, "id", id)
	return arch, nil
}

// Restore moves archive record id back into the active store under a new
// active id, preserving the original creation timestamp, then removes the
// archive row.  Absent id → fault.NotFound.
func (m *Manager[R, A]) Restore(ctx context.Context, id uint64) (R, error) {
	var zero R

	arch, err := m.archive.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}

	// Same bias as SoftDelete: create the new copy before dropping the old.
	rec, err := m.active.Insert(ctx, m.mapper.Activate(arch))
	if err != nil {
		metrics.LifecycleErrors.WithLabelValues(m.entity, "restore").Inc()
		return zero, err
	}

	if err := m.archive.DeleteByID(ctx, id); err != nil {
		metrics.LifecycleErrors.WithLabelValues(m.entity, "restore").Inc()
		zap.S().Errorw("archive delete failed after restore insert",
			"entity", m.entity, "archive_id", id, "err", err)
		return zero, err
	}

	metrics.RestoreTotal.WithLabelValues(m.entity).Inc()
	zap.S().Infow("record restored", "entity", m.entity, "archive_id", id)
	return rec, nil
}

// Purge removes archive record id permanently.  Irreversible; a second
// purge of the same id fails with fault.NotFound.
func (m *Manager[R, A]) Purge(ctx context.Context, id uint64) error {
	if err := m.archive.DeleteByID(ctx, id); err != nil {
		return err
	}
	metrics.PurgeTotal.WithLabelValues(m.entity).Inc()
	zap.S().Infow("record purged", "entity", m.entity, "archive_id", id)
	return nil
}

// Active lists active records, newest first.
func (m *Manager[R, A]) Active(ctx context.Context) ([]R, error) {
	return m.active.ListAll(ctx)
}

// Deleted lists archived records, most recently archived first.
func (m *Manager[R, A]) Deleted(ctx context.Context) ([]A, error) {
	return m.archive.ListAll(ctx)
}
