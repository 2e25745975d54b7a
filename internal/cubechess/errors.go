package cubechess

import "errors"

var (
	ErrOutOfBounds          = errors.New("coordinate out of bounds")
	ErrIllegalMove          = errors.New("illegal move")
	ErrInvalidPromotionRole = errors.New("invalid promotion role")
	ErrInvalidEncoding      = errors.New("invalid board encoding")
)
