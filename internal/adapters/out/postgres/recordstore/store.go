package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mealroute/internal/core/ports"
	"mealroute/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRecordStore implements ports.RecordStore using GORM against Postgres.
// Any failure to reach the database is reported as a connectivity error so
// the sync layer queues the write instead of failing the operation.
type GormRecordStore struct {
	db    *gorm.DB
	clock func() time.Time
}

// NewGormRecordStore creates a new GORM record store.
func NewGormRecordStore(db *gorm.DB) (*GormRecordStore, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}

	return &GormRecordStore{
		db:    db,
		clock: time.Now,
	}, nil
}

// Probe checks database reachability without transferring data.
func (s *GormRecordStore) Probe(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errs.NewConnectivityError("probe", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return errs.NewConnectivityError("probe", err)
	}

	return nil
}

// Fetch retrieves the current document for one kind. A kind that has never
// been written returns a nil payload and no error.
func (s *GormRecordStore) Fetch(ctx context.Context, kind ports.RecordKind) (json.RawMessage, error) {
	var dto RecordDocumentDTO

	err := s.db.WithContext(ctx).First(&dto, "kind = ?", kind.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewConnectivityError("fetch "+kind.String(), err)
	}

	return dto.Payload, nil
}

// Save replaces the document for one kind, creating the row on first write.
func (s *GormRecordStore) Save(ctx context.Context, kind ports.RecordKind, payload json.RawMessage) error {
	dto := RecordDocumentDTO{
		Kind:      kind.String(),
		Payload:   payload,
		UpdatedAt: s.clock(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&dto).Error
	if err != nil {
		return errs.NewConnectivityError("save "+kind.String(), err)
	}

	return nil
}
