package video

import "github.com/appcurve/olivia-party-sub000/internal/domain"

type CreateVideoRequest struct {
	Name       string `json:"name" binding:"required"`
	Platform   string `json:"platform" binding:"required"`
	ExternalID string `json:"external_id" binding:"required"`
}

type UpdateVideoRequest struct {
	Name       string `json:"name,omitempty"`
	Platform   string `json:"platform,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

type GroupRequest struct {
	Name       string   `json:"name" binding:"required"`
	VideoUUIDs []string `json:"video_uuids"`
}

type VideoResponse struct {
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	Platform   string `json:"platform"`
	ExternalID string `json:"external_id"`
}

type GroupResponse struct {
	UUID   string          `json:"uuid"`
	Name   string          `json:"name"`
	Videos []VideoResponse `json:"videos"`
}

func toVideoResponse(v *domain.Video) VideoResponse {
	return VideoResponse{
		UUID:       v.UUID,
		Name:       v.Name,
		Platform:   string(v.Platform),
		ExternalID: v.ExternalID,
	}
}

func toGroupResponse(g *domain.VideoGroup) GroupResponse {
	videos := make([]VideoResponse, 0, len(g.Videos))
	for i := range g.Videos {
		videos = append(videos, toVideoResponse(&g.Videos[i]))
	}
	return GroupResponse{UUID: g.UUID, Name: g.Name, Videos: videos}
}
