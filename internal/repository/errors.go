package repository

import "errors"

// ErrNoData is returned when an upstream answered but had nothing usable for
// the requested instrument.
var ErrNoData = errors.New("no data available")
