package postgres

import "time"

// schemaRevision is one row of the append-only log: one revision of one
// lineage. The (schema_id, revision) primary key is what turns a concurrent
// double-append into a detectable conflict.
type schemaRevision struct {
	SchemaID  string    `gorm:"column:schema_id;primaryKey"`
	Revision  int64     `gorm:"column:revision;primaryKey;autoIncrement:false"`
	Payload   []byte    `gorm:"column:payload"`
	Hash      []byte    `gorm:"column:hash;index:idx_schema_revisions_hash"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName overrides gorm's default pluralization.
func (schemaRevision) TableName() string { return "schema_revisions" }
