package world

import "errors"

var (
	ErrEntityNotFound     = errors.New("entity not found")
	ErrComponentNotFound  = errors.New("component not found")
	ErrDuplicateComponent = errors.New("duplicate capability")
	ErrNilComponent       = errors.New("nil component")
	ErrAlreadyAttached    = errors.New("component already attached to an entity")
)
