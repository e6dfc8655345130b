package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is the base for every missing-record error; handlers match it
// with errors.Is and answer 404.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrSubNotFound     = fmt.Errorf("sub %w", ErrNotFound)
	ErrPostNotFound    = fmt.Errorf("post %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
	ErrVoteNotFound    = fmt.Errorf("vote %w", ErrNotFound)
)

var (
	ErrInvalidVoteValue = errors.New("value must be -1, 0 or 1")
	ErrSubExists        = errors.New("sub already exists")
	ErrEmptySearch      = errors.New("name must not be empty")
	ErrNotAnImage       = errors.New("file must be a jpeg or png image")
	ErrInvalidImageType = errors.New("type must be image or banner")
)
