package video

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/appcurve/olivia-party-sub000/internal/domain"
	"github.com/appcurve/olivia-party-sub000/internal/modules/player"
)

// Service manages an operator's video catalog and groups. Every mutation
// notifies the user's player so an online device reloads its shelf.
type Service struct {
	videos   VideoRepositoryInterface
	notifier Notifier
}

func NewService(videos VideoRepositoryInterface, notifier Notifier) *Service {
	return &Service{videos: videos, notifier: notifier}
}

func (s *Service) ListVideos(ctx context.Context, userID int64) ([]VideoResponse, error) {
	videos, err := s.videos.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		out = append(out, toVideoResponse(&videos[i]))
	}
	return out, nil
}

func (s *Service) CreateVideo(ctx context.Context, userID int64, req CreateVideoRequest) (*VideoResponse, error) {
	platform, err := parsePlatform(req.Platform)
	if err != nil {
		return nil, err
	}

	v := &domain.Video{
		UUID:       uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Platform:   platform,
		ExternalID: req.ExternalID,
	}
	if err := s.videos.Create(ctx, v); err != nil {
		return nil, err
	}

	s.notifyCatalogChanged(userID)
	resp := toVideoResponse(v)
	return &resp, nil
}

func (s *Service) UpdateVideo(ctx context.Context, userID int64, videoUUID string, req UpdateVideoRequest) (*VideoResponse, error) {
	v, err := s.videos.GetByUUID(ctx, userID, videoUUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		v.Name = req.Name
	}
	if req.Platform != "" {
		platform, err := parsePlatform(req.Platform)
		if err != nil {
			return nil, err
		}
		v.Platform = platform
	}
	if req.ExternalID != "" {
		v.ExternalID = req.ExternalID
	}

	if err := s.videos.Update(ctx, v); err != nil {
		return nil, err
	}

	s.notifyCatalogChanged(userID)
	resp := toVideoResponse(v)
	return &resp, nil
}

func (s *Service) DeleteVideo(ctx context.Context, userID int64, videoUUID string) error {
	if err := s.videos.Delete(ctx, userID, videoUUID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	s.notifyCatalogChanged(userID)
	return nil
}

func (s *Service) ListGroups(ctx context.Context, userID int64) ([]GroupResponse, error) {
	groups, err := s.videos.ListGroupsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, toGroupResponse(&groups[i]))
	}
	return out, nil
}

func (s *Service) CreateGroup(ctx context.Context, userID int64, req GroupRequest) (*GroupResponse, error) {
	members, err := s.resolveMembers(ctx, userID, req.VideoUUIDs)
	if err != nil {
		return nil, err
	}

	g := &domain.VideoGroup{
		UUID:   uuid.NewString(),
		UserID: userID,
		Name:   req.Name,
		Videos: members,
	}
	if err := s.videos.CreateGroup(ctx, g); err != nil {
		return nil, err
	}

	s.notifyCatalogChanged(userID)
	resp := toGroupResponse(g)
	return &resp, nil
}

func (s *Service) UpdateGroup(ctx context.Context, userID int64, groupUUID string, req GroupRequest) (*GroupResponse, error) {
	g, err := s.videos.GetGroupByUUID(ctx, userID, groupUUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	members, err := s.resolveMembers(ctx, userID, req.VideoUUIDs)
	if err != nil {
		return nil, err
	}

	g.Name = req.Name
	g.Videos = members
	if err := s.videos.UpdateGroup(ctx, g); err != nil {
		return nil, err
	}

	s.notifyCatalogChanged(userID)
	resp := toGroupResponse(g)
	return &resp, nil
}

func (s *Service) DeleteGroup(ctx context.Context, userID int64, groupUUID string) error {
	if err := s.videos.DeleteGroup(ctx, userID, groupUUID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	s.notifyCatalogChanged(userID)
	return nil
}

// resolveMembers maps uuids to the caller's own videos; referencing a
// video that is missing or belongs to another user fails the whole
// request.
func (s *Service) resolveMembers(ctx context.Context, userID int64, uuids []string) ([]domain.Video, error) {
	members := make([]domain.Video, 0, len(uuids))
	for _, id := range uuids {
		v, err := s.videos.GetByUUID(ctx, userID, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, ErrUnknownGroupItem
			}
			return nil, err
		}
		members = append(members, *v)
	}
	return members, nil
}

func (s *Service) notifyCatalogChanged(userID int64) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyUser(userID, player.Event{
		Type:     player.EventCatalogChanged,
		Resource: player.ResourceVideos,
	})
}

func parsePlatform(raw string) (domain.VideoPlatform, error) {
	switch domain.VideoPlatform(raw) {
	case domain.PlatformYouTube, domain.PlatformVimeo:
		return domain.VideoPlatform(raw), nil
	default:
		return "", ErrUnknownPlatform
	}
}
