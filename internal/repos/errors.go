package repos

import "errors"

var (
	// ErrEmptyKey: a dictionary natural key was blank after trimming.
	ErrEmptyKey = errors.New("repos: natural key must be non-empty")
	// ErrEmptyID: a required uid argument was blank. No storage call is made.
	ErrEmptyID = errors.New("repos: uid must be non-empty")
	// ErrNotFound distinguishes "no matching entity" from storage failure.
	ErrNotFound = errors.New("repos: not found")
)
