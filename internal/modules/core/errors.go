package core

import "errors"

// ErrNotFound is the storage-level sentinel every store implementation
// returns when a record does not exist. Command and query handlers translate
// it into the domain error appropriate for the entity being looked up.
var ErrNotFound = errors.New("record not found")
