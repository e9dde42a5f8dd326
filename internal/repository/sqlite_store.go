package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateBucket is one persisted document stored as a JSON blob.
type StateBucket struct {
	Bucket  string `gorm:"primaryKey"`
	Payload []byte `gorm:"not null"`
}

// TableName keeps the table name stable regardless of GORM's pluralization.
func (StateBucket) TableName() string { return "state" }

// SQLiteStore snapshots the three documents into a single SQLite table.
// All buckets are written in one transaction, so a save is all-or-nothing.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore prepares the state table on db.
func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&StateBucket{}); err != nil {
		return nil, &PersistenceError{Op: "open", Document: "state", Err: err}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Documents, error) {
	var rows []StateBucket
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return Documents{}, &PersistenceError{Op: "load", Document: "state", Err: err}
	}
	var docs Documents
	for _, row := range rows {
		if err := decodeBucket(&docs, row.Bucket, row.Payload); err != nil {
			log.Warn().Err(err).Str("bucket", row.Bucket).Msg("malformed bucket ignored")
		}
	}
	return docs, nil
}

func (s *SQLiteStore) Save(ctx context.Context, docs Documents) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, bucket := range buckets {
			payload, err := encodeBucket(docs, bucket)
			if err != nil {
				return err
			}
			row := StateBucket{Bucket: bucket, Payload: payload}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "bucket"}},
				DoUpdates: clause.AssignmentColumns([]string{"payload"}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("upsert %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		return &PersistenceError{Op: "save", Document: "state", Err: err}
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
