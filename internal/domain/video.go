package domain

import "time"

type VideoPlatform string

const (
	PlatformYouTube VideoPlatform = "youtube"
	PlatformVimeo   VideoPlatform = "vimeo"
)

// Video is a single catalog entry an operator curates for their player.
// ExternalID is the platform-side identifier (e.g. a YouTube video id).
type Video struct {
	ID         int64         `json:"id" gorm:"primaryKey"`
	UUID       string        `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	UserID     int64         `json:"user_id" gorm:"index;not null"`
	Name       string        `json:"name"`
	Platform   VideoPlatform `json:"platform" gorm:"size:16;not null"`
	ExternalID string        `json:"external_id" gorm:"not null"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// VideoGroup is an ordered shelf of videos the player cycles through.
type VideoGroup struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	UserID    int64     `json:"user_id" gorm:"index;not null"`
	Name      string    `json:"name"`
	Videos    []Video   `json:"videos" gorm:"many2many:video_group_videos"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
