package turn

import "errors"

var ErrTurnLimit = errors.New("turn limit reached")
