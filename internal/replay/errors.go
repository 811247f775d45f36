package replay

import "errors"

// Error constants.
var (
	ErrInvalidConfig = errors.New("invalid replay config")
	ErrReadFile      = errors.New("read submissions file")
	ErrUnhealthy     = errors.New("service unhealthy")
)
