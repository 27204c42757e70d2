package domain

import "errors"

// Storage-level sentinels. Repositories translate driver errors into these;
// services translate them into their own module errors at the boundary.
var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already taken")
)
