package repositories

import "errors"

// ErrNotFound is returned when a row does not exist or does not belong to the
// caller. The two cases are deliberately indistinguishable so handlers cannot
// leak the existence of another user's resource.
var ErrNotFound = errors.New("record not found")
