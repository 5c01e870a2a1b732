package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 端末ローカルSQLiteをDurableStoreとして使う実装。
type KVSQLiteStore struct {
	db *gorm.DB
}

// DI
func NewKVSQLiteStore(db *gorm.DB) (*KVSQLiteStore, error) {
	if err := db.AutoMigrate(&model.KVEntry{}); err != nil {
		return nil, err
	}
	return &KVSQLiteStore{db: db}, nil
}

func (s *KVSQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntry

	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry.Value, nil
}

func (s *KVSQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	entry := model.KVEntry{
		Key:   key,
		Value: value,
	}

	// 同一キーは上書き
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *KVSQLiteStore) Delete(ctx context.Context, key string) error {
	// 無くてもエラーにしない
	return s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.KVEntry{}).Error
}
