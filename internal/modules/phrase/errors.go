package phrase

import "errors"

var (
	ErrListNotFound    = errors.New("phrase list not found")
	ErrInvalidLanguage = errors.New("invalid language tag")
)
