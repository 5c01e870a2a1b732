package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// サーバー側カートスナップショットのGORM実装。
type RemoteCartGormRepository struct {
	db *gorm.DB
}

// DI
func NewRemoteCartGormRepository(db *gorm.DB) *RemoteCartGormRepository {
	return &RemoteCartGormRepository{db: db}
}

func (r *RemoteCartGormRepository) FindByIdentity(ctx context.Context, identity string) (model.RemoteCart, error) {
	var cart model.RemoteCart

	err := r.db.WithContext(ctx).
		Where("identity = ?", identity).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RemoteCart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.RemoteCart{}, err
	}

	return cart, nil
}

// 同一identityは丸ごと上書き（フルリプレース）。
func (r *RemoteCartGormRepository) Replace(ctx context.Context, identity string, items []byte) error {
	cart := model.RemoteCart{
		Identity: identity,
		Items:    items,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
		}).
		Create(&cart).Error
}

func (r *RemoteCartGormRepository) DeleteByIdentity(ctx context.Context, identity string) error {
	// 無くてもエラーにしない
	return r.db.WithContext(ctx).
		Where("identity = ?", identity).
		Delete(&model.RemoteCart{}).Error
}
