package phrase

import (
	"context"

	"github.com/appcurve/olivia-party-sub000/internal/domain"
	"github.com/appcurve/olivia-party-sub000/internal/modules/player"
)

type PhraseRepositoryInterface interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.PhraseList, error)
	GetByUUID(ctx context.Context, userID int64, uuid string) (*domain.PhraseList, error)
	Create(ctx context.Context, list *domain.PhraseList) error
	Update(ctx context.Context, list *domain.PhraseList) error
	Delete(ctx context.Context, userID int64, uuid string) error
}

type Notifier interface {
	NotifyUser(userID int64, event player.Event) bool
}
