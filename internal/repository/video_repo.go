package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/appcurve/olivia-party-sub000/internal/domain"
)

// VideoRepository persists videos and video groups. Every query is
// scoped by user id so one operator can never see or touch another's
// catalog, and a foreign uuid behaves exactly like a missing one.
type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Video, error) {
	var videos []domain.Video
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&videos).Error
	return videos, err
}

func (r *VideoRepository) GetByUUID(ctx context.Context, userID int64, uuid string) (*domain.Video, error) {
	var v domain.Video
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND uuid = ?", userID, uuid).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepository) Create(ctx context.Context, v *domain.Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VideoRepository) Update(ctx context.Context, v *domain.Video) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VideoRepository) Delete(ctx context.Context, userID int64, uuid string) error {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND uuid = ?", userID, uuid).
		Delete(&domain.Video{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) ListGroupsByUser(ctx context.Context, userID int64) ([]domain.VideoGroup, error) {
	var groups []domain.VideoGroup
	err := r.db.WithContext(ctx).
		Preload("Videos").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&groups).Error
	return groups, err
}

func (r *VideoRepository) GetGroupByUUID(ctx context.Context, userID int64, uuid string) (*domain.VideoGroup, error) {
	var g domain.VideoGroup
	err := r.db.WithContext(ctx).
		Preload("Videos").
		Where("user_id = ? AND uuid = ?", userID, uuid).
		First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *VideoRepository) CreateGroup(ctx context.Context, g *domain.VideoGroup) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *VideoRepository) UpdateGroup(ctx context.Context, g *domain.VideoGroup) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(g).Update("name", g.Name).Error; err != nil {
			return err
		}
		return tx.Model(g).Association("Videos").Replace(g.Videos)
	})
}

func (r *VideoRepository) DeleteGroup(ctx context.Context, userID int64, uuid string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g domain.VideoGroup
		if err := tx.Where("user_id = ? AND uuid = ?", userID, uuid).First(&g).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&g).Association("Videos").Clear(); err != nil {
			return err
		}
		return tx.Delete(&g).Error
	})
}
