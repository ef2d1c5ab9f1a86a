package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrUndefinedRatio = errors.New("undefined ratio")
)

var (
	ErrUndefinedScore = fmt.Errorf("balance score: mean risk is zero: %w", ErrUndefinedRatio)
	ErrZeroTarget     = fmt.Errorf("completion: target value is zero: %w", ErrUndefinedRatio)
)
