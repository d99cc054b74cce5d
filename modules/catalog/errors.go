package catalog

import "errors"

// ErrDuplicateID is returned when adding a property whose id is already listed.
var ErrDuplicateID = errors.New("property id already listed")
