package repository

import "errors"

var (
	ErrNoCorpus      = errors.New("no external corpus found")
	ErrNotSequence   = errors.New("corpus is not a sequence of records")
	ErrEmptyCorpus   = errors.New("corpus contains no records")
	ErrInvalidRecord = errors.New("corpus record is not an object")
	ErrTrailingData  = errors.New("unexpected data after corpus")
)
