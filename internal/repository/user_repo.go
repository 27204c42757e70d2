package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/appcurve/olivia-party-sub000/internal/domain"
)

// UserRepository is the gorm-backed UserDirectory. Rotation correctness
// rests on ReplaceRefreshHash being a single conditional UPDATE: the row
// is only touched while the stored hash is still the expected one.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	UUID             string    `gorm:"column:uuid"`
	Email            string    `gorm:"column:email"`
	Name             string    `gorm:"column:name"`
	Locale           *string   `gorm:"column:locale"`
	PasswordHash     string    `gorm:"column:password_hash"`
	RefreshTokenHash *string   `gorm:"column:refresh_token_hash"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var locale, refreshHash string
	if m.Locale != nil {
		locale = *m.Locale
	}
	if m.RefreshTokenHash != nil {
		refreshHash = *m.RefreshTokenHash
	}

	return &domain.User{
		ID:               m.ID,
		UUID:             m.UUID,
		Email:            m.Email,
		Name:             m.Name,
		Locale:           locale,
		PasswordHash:     m.PasswordHash,
		RefreshTokenHash: refreshHash,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	var locale, refreshHash *string
	if u.Locale != "" {
		v := u.Locale
		locale = &v
	}
	if u.RefreshTokenHash != "" {
		v := u.RefreshTokenHash
		refreshHash = &v
	}

	return userModel{
		ID:               u.ID,
		UUID:             u.UUID,
		Email:            strings.ToLower(strings.TrimSpace(u.Email)),
		Name:             u.Name,
		Locale:           locale,
		PasswordHash:     u.PasswordHash,
		RefreshTokenHash: refreshHash,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, email, hash string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Update("password_hash", hash).Error
}

func (r *UserRepository) SetRefreshHash(ctx context.Context, email, hash string) error {
	var value any
	if hash != "" {
		value = hash
	}
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Update("refresh_token_hash", value).Error
}

func (r *UserRepository) ReplaceRefreshHash(ctx context.Context, email, current, next string) error {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ? AND refresh_token_hash = ?", strings.ToLower(email), current).
		Update("refresh_token_hash", next)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, email, name, locale string) error {
	updates := map[string]any{"name": name}
	if locale != "" {
		updates["locale"] = locale
	}
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Updates(updates).Error
}

// isUniqueViolation detects duplicate-key failures from either backend:
// pgx surfaces SQLSTATE 23505, gorm's TranslateError covers sqlite.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
