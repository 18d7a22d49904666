package scheduler

import "errors"

var ErrTickLimit = errors.New("scheduler: tick limit reached with tasks still pending")
