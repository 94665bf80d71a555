package model

import (
	"errors"
	"fmt"
)

// Defining possible error
var (
	ErrMissingColumn   = errors.New("missing required column")
	ErrEmptySeries     = errors.New("statistic on empty series")
	ErrInvalidQuantile = errors.New("quantile bounds must satisfy 0 <= low < high <= 1")
	ErrNonPositive     = errors.New("log-scale filter needs strictly positive values")
	ErrTooFewValues    = errors.New("standard deviation needs at least two values")
	ErrInvalidSigma    = errors.New("sigma multiplier k must be positive")
)

// ParseError reports a problem in a delimited input file.
type ParseError struct {
	Path   string
	Line   int // 0 when the problem is in the header as a whole
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d, column %q: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse %s: column %q: %v", e.Path, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
