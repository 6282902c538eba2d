package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateFrame кадр без единого ненулевого отсчёта, нормировать нечем.
	ErrDegenerateFrame = errors.New("degenerate frame: maximum intensity is zero")

	// ErrInvalidFrame кадр пустой или содержит недопустимые отсчёты.
	ErrInvalidFrame = errors.New("invalid frame")

	// ErrInvalidParameter параметр детекции вне допустимой области.
	ErrInvalidParameter = errors.New("invalid detection parameter")

	// ErrDegenerateContour контур с нулевым моментом, центр не определён.
	ErrDegenerateContour = errors.New("degenerate contour: zero area moment")
)

// ParameterError описывает конкретный некорректный параметр.
type ParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
