package domain

import "errors"

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("duplicate entry")
var ErrInvalidData = errors.New("invalid data")
var ErrInvalidState = errors.New("invalid state")
var ErrNoPermission = errors.New("no permission")
