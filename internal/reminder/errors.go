package reminder

import "errors"

// ErrStopped возвращается Schedule после Stop.
var ErrStopped = errors.New("reminder dispatcher stopped")
