package domain

import "errors"

// ErrEmptyCorpus is returned when a stage receives zero documents.
var ErrEmptyCorpus = errors.New("empty corpus: no titles supplied")

// ErrInvalidConfig is returned for a non-positive cluster count or
// thresholds outside [0, 1].
var ErrInvalidConfig = errors.New("invalid configuration")
