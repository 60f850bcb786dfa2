package npc

import "errors"

var (
	ErrUnknownController = errors.New("unknown controller")
	ErrInvalidParams     = errors.New("invalid controller params")
)
