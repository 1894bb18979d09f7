package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blockedby/dispatch-os/internal/models"
)

// jobRow is the durable form of a job: a JSON blob keyed by id. The
// schema stays schemaless on purpose; the memory store owns the live
// representation and the snapshot only has to survive restarts.
type jobRow struct {
	ID        string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

func (jobRow) TableName() string { return "job_snapshots" }

// techMetaRow is the durable form of a technician's metadata blob.
type techMetaRow struct {
	ID        string `gorm:"primaryKey"`
	Data      []byte
	UpdatedAt time.Time
}

func (techMetaRow) TableName() string { return "technician_meta_snapshots" }

// Snapshot persists committed mutations to an embedded sqlite file and
// restores them at boot. Implements Persister.
type Snapshot struct {
	db *gorm.DB
}

// OpenSnapshot opens (or creates) the sqlite snapshot file and migrates
// its tables.
func OpenSnapshot(path string) (*Snapshot, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	if err := db.AutoMigrate(&jobRow{}, &techMetaRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot: %w", err)
	}
	return &Snapshot{db: db}, nil
}

// PersistJob writes the committed job row.
func (s *Snapshot) PersistJob(ctx context.Context, job *models.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	row := jobRow{ID: job.ID.String(), Data: data, UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("persist job %s: %w", job.ID, err)
	}
	return nil
}

// PersistTechnicianMeta writes a technician's metadata blob.
func (s *Snapshot) PersistTechnicianMeta(ctx context.Context, id uuid.UUID, meta models.TechnicianMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal technician meta: %w", err)
	}
	row := techMetaRow{ID: id.String(), Data: data, UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("persist technician meta %s: %w", id, err)
	}
	return nil
}

// Restore overlays persisted jobs and technician metadata onto a seeded
// memory store. Call before SetPersister so restoring does not write the
// rows straight back.
func (s *Snapshot) Restore(ctx context.Context, mem *Memory) error {
	var jobs []jobRow
	if err := s.db.WithContext(ctx).Find(&jobs).Error; err != nil {
		return fmt.Errorf("restore jobs: %w", err)
	}
	for _, row := range jobs {
		var j models.Job
		if err := json.Unmarshal(row.Data, &j); err != nil {
			return fmt.Errorf("restore job %s: %w", row.ID, err)
		}
		mem.AddJob(&j)
	}

	var metas []techMetaRow
	if err := s.db.WithContext(ctx).Find(&metas).Error; err != nil {
		return fmt.Errorf("restore technician meta: %w", err)
	}
	for _, row := range metas {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return fmt.Errorf("restore technician meta %s: %w", row.ID, err)
		}
		var meta models.TechnicianMeta
		if err := json.Unmarshal(row.Data, &meta); err != nil {
			return fmt.Errorf("restore technician meta %s: %w", row.ID, err)
		}
		if err := mem.SetTechnicianMeta(ctx, id, meta); err != nil {
			// a row for a technician dropped from the roster is stale
			if errors.Is(err, ErrTechnicianNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}
