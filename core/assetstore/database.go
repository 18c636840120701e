package assetstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"controller-cleaner/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ControllerDocument is one stored controller document.
type ControllerDocument struct {
	Key       string `gorm:"primaryKey;size:255"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName overrides the default table name.
func (ControllerDocument) TableName() string {
	return "controller_documents"
}

// DatabaseBackend stores documents in a relational table.
type DatabaseBackend struct {
	db *gorm.DB
}

// NewDatabaseBackend returns a backend over db. Call Migrate before first use.
func NewDatabaseBackend(db *gorm.DB) *DatabaseBackend {
	return &DatabaseBackend{db: db}
}

// Migrate creates or updates the documents table.
func (b *DatabaseBackend) Migrate() error {
	if err := b.db.AutoMigrate(&ControllerDocument{}); err != nil {
		return fmt.Errorf("failed to migrate controller documents: %w", err)
	}
	return nil
}

// Verify checks that the documents table has every column the backend uses.
func (b *DatabaseBackend) Verify() error {
	missing, err := database.MissingColumns(b.db, ControllerDocument{}.TableName(), "key", "data", "updated_at")
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("controller_documents is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (b *DatabaseBackend) Name() string { return "database" }

func (b *DatabaseBackend) List(ctx context.Context) ([]string, error) {
	var keys []string
	if err := b.db.WithContext(ctx).Model(&ControllerDocument{}).Order("`key`").Pluck("key", &keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list controller documents: %w", err)
	}
	return keys, nil
}

func (b *DatabaseBackend) Read(ctx context.Context, key string) ([]byte, error) {
	var doc ControllerDocument
	err := b.db.WithContext(ctx).Where("`key` = ?", key).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read controller document %s: %w", key, err)
	}
	return doc.Data, nil
}

func (b *DatabaseBackend) Write(ctx context.Context, key string, data []byte) error {
	doc := ControllerDocument{Key: key, Data: data, UpdatedAt: time.Now()}
	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to write controller document %s: %w", key, err)
	}
	return nil
}
