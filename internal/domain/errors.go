package domain

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidUtterance = errors.New("invalid utterance")
)
