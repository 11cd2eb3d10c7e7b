// Package recordstore persists the per-kind dataset documents in Postgres.
// The remote system of record holds one row per record kind with the full
// JSON document as payload; the sync layer owns the encoding, so this
// adapter never inspects the documents it moves.
package recordstore

import (
	"encoding/json"
	"time"
)

// RecordDocumentDTO represents one dataset section as stored in the
// database. The kind name is the primary key, so each section has exactly
// one current document and saves are plain upserts.
type RecordDocumentDTO struct {
	Kind      string          `gorm:"type:varchar(64);primaryKey"`
	Payload   json.RawMessage `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for record documents.
// Overrides GORM's default naming convention to use "record_documents".
func (RecordDocumentDTO) TableName() string {
	return "record_documents"
}
