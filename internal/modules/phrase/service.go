package phrase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/appcurve/olivia-party-sub000/internal/domain"
	"github.com/appcurve/olivia-party-sub000/internal/modules/player"
	"github.com/appcurve/olivia-party-sub000/internal/pkg/validator"
)

// Service manages phrase lists for the player's speech mode.
type Service struct {
	lists    PhraseRepositoryInterface
	notifier Notifier
}

func NewService(lists PhraseRepositoryInterface, notifier Notifier) *Service {
	return &Service{lists: lists, notifier: notifier}
}

func (s *Service) List(ctx context.Context, userID int64) ([]ListResponse, error) {
	lists, err := s.lists.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ListResponse, 0, len(lists))
	for i := range lists {
		out = append(out, toListResponse(&lists[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, userID int64, listUUID string) (*ListResponse, error) {
	list, err := s.lists.GetByUUID(ctx, userID, listUUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	resp := toListResponse(list)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, userID int64, req ListRequest) (*ListResponse, error) {
	phrases, err := toPhrases(req.Phrases)
	if err != nil {
		return nil, err
	}

	list := &domain.PhraseList{
		UUID:    uuid.NewString(),
		UserID:  userID,
		Name:    req.Name,
		Phrases: phrases,
	}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, err
	}

	s.notifyCatalogChanged(userID)
	resp := toListResponse(list)
	return &resp, nil
}

// Update renames a list and replaces its phrases wholesale; the player
// always reloads a list as a unit, so partial phrase edits have no
// separate operation.
func (s *Service) Update(ctx context.Context, userID int64, listUUID string, req ListRequest) (*ListResponse, error) {
	list, err := s.lists.GetByUUID(ctx, userID, listUUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	phrases, err := toPhrases(req.Phrases)
	if err != nil {
		return nil, err
	}

	list.Name = req.Name
	list.Phrases = phrases
	if err := s.lists.Update(ctx, list); err != nil {
		return nil, err
	}

	s.notifyCatalogChanged(userID)
	resp := toListResponse(list)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, listUUID string) error {
	if err := s.lists.Delete(ctx, userID, listUUID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrListNotFound
		}
		return err
	}
	s.notifyCatalogChanged(userID)
	return nil
}

func toPhrases(inputs []PhraseInput) ([]domain.Phrase, error) {
	phrases := make([]domain.Phrase, 0, len(inputs))
	for _, in := range inputs {
		if !validator.Var(in.Language, "bcp47_language_tag") {
			return nil, ErrInvalidLanguage
		}
		label := in.Label
		if label == "" {
			label = in.Text
		}
		phrases = append(phrases, domain.Phrase{
			Label:    label,
			Text:     in.Text,
			Language: in.Language,
		})
	}
	return phrases, nil
}

func (s *Service) notifyCatalogChanged(userID int64) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyUser(userID, player.Event{
		Type:     player.EventCatalogChanged,
		Resource: player.ResourcePhrases,
	})
}
