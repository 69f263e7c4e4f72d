package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/expense-tracker/internal/core/datamodel/kv"
	"github.com/frahmantamala/expense-tracker/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KVRepository struct {
	db *gorm.DB
}

func NewKVRepository(db *gorm.DB) storage.KV {
	return &KVRepository{db: db}
}

func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var entry kv.Entry
	err := r.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	entry := kv.Entry{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (r *KVRepository) Remove(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&kv.Entry{}).Error; err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
