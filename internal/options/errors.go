package options

import "errors"

// ErrIllegalState is returned when mutation is attempted on a frozen
// VersionOptions.
var ErrIllegalState = errors.New("illegal state: mutation attempted after freeze")
