package model

import "errors"

// Storage-level errors returned by repository implementations so services
// stay independent of the database driver.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
