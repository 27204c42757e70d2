package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/appcurve/olivia-party-sub000/internal/domain"
)

// PhraseRepository persists phrase lists. Phrases are child rows replaced
// wholesale on update; the player always reloads a list as a unit.
type PhraseRepository struct {
	db *gorm.DB
}

func NewPhraseRepository(db *gorm.DB) *PhraseRepository {
	return &PhraseRepository{db: db}
}

func (r *PhraseRepository) ListByUser(ctx context.Context, userID int64) ([]domain.PhraseList, error) {
	var lists []domain.PhraseList
	err := r.db.WithContext(ctx).
		Preload("Phrases").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

func (r *PhraseRepository) GetByUUID(ctx context.Context, userID int64, uuid string) (*domain.PhraseList, error) {
	var list domain.PhraseList
	err := r.db.WithContext(ctx).
		Preload("Phrases").
		Where("user_id = ? AND uuid = ?", userID, uuid).
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (r *PhraseRepository) Create(ctx context.Context, list *domain.PhraseList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// Update renames the list and replaces its phrases in one transaction.
func (r *PhraseRepository) Update(ctx context.Context, list *domain.PhraseList) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(list).Update("name", list.Name).Error; err != nil {
			return err
		}
		if err := tx.Where("phrase_list_id = ?", list.ID).Delete(&domain.Phrase{}).Error; err != nil {
			return err
		}
		for i := range list.Phrases {
			list.Phrases[i].ID = 0
			list.Phrases[i].PhraseListID = list.ID
		}
		if len(list.Phrases) == 0 {
			return nil
		}
		return tx.Create(&list.Phrases).Error
	})
}

func (r *PhraseRepository) Delete(ctx context.Context, userID int64, uuid string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list domain.PhraseList
		if err := tx.Where("user_id = ? AND uuid = ?", userID, uuid).First(&list).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Where("phrase_list_id = ?", list.ID).Delete(&domain.Phrase{}).Error; err != nil {
			return err
		}
		return tx.Delete(&list).Error
	})
}
