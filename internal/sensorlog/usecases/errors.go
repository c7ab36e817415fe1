package usecases

import "errors"

var ErrPersistence = errors.New("persisting reading")
