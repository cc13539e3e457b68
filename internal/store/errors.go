package store

import "errors"

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrCapacityExceeded      = errors.New("event is at full capacity")
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrDuplicateSlug         = errors.New("duplicate slug")
)
