package port

import "errors"

var ErrUnknownBucket = errors.New("bucket is unknown")
var ErrNotFound = errors.New("resource not found")
var ErrConflict = errors.New("rev doesn't match for update")
