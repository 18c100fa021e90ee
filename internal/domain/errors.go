package domain

import "errors"

// ErrDataUnavailable indicates the backing store could not produce data.
var ErrDataUnavailable = errors.New("data unavailable")
