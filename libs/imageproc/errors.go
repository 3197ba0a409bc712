package imageproc

import "errors"

// ErrInvalidParameter is wrapped by every error returned for a parameter the
// algorithm cannot work with (zero radius, non-positive sigma, ...).
var ErrInvalidParameter = errors.New("invalid parameter")
