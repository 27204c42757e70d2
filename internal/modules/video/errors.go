package video

import "errors"

var (
	ErrVideoNotFound    = errors.New("video not found")
	ErrGroupNotFound    = errors.New("video group not found")
	ErrUnknownPlatform  = errors.New("unknown video platform")
	ErrUnknownGroupItem = errors.New("group references an unknown video")
)
