package domain

import "errors"

// ErrValidation marks readings rejected because of their content. It is
// wrapped with the specific reason.
var ErrValidation = errors.New("validation failed")
