package video

import (
	"context"

	"github.com/appcurve/olivia-party-sub000/internal/domain"
	"github.com/appcurve/olivia-party-sub000/internal/modules/player"
)

// VideoRepositoryInterface is the storage slice this module uses. All
// lookups are scoped by user id; a foreign uuid surfaces as
// domain.ErrNotFound.
type VideoRepositoryInterface interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Video, error)
	GetByUUID(ctx context.Context, userID int64, uuid string) (*domain.Video, error)
	Create(ctx context.Context, v *domain.Video) error
	Update(ctx context.Context, v *domain.Video) error
	Delete(ctx context.Context, userID int64, uuid string) error

	ListGroupsByUser(ctx context.Context, userID int64) ([]domain.VideoGroup, error)
	GetGroupByUUID(ctx context.Context, userID int64, uuid string) (*domain.VideoGroup, error)
	CreateGroup(ctx context.Context, g *domain.VideoGroup) error
	UpdateGroup(ctx context.Context, g *domain.VideoGroup) error
	DeleteGroup(ctx context.Context, userID int64, uuid string) error
}

// Notifier pushes catalog-change events to an online player device.
type Notifier interface {
	NotifyUser(userID int64, event player.Event) bool
}
