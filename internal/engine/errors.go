package engine

import "errors"

var (
	// ErrNotFound means no catalog row matched a title, genre, or search
	// query. Recoverable; shells render it as an empty-result message.
	ErrNotFound = errors.New("no matching titles")

	// ErrNoMatches means a description query produced zero positive-similarity
	// rows in the filtered subset. Recoverable, same as ErrNotFound.
	ErrNoMatches = errors.New("no similar titles")

	// ErrNotFit means Transform ran before Fit. That is a programming error
	// in the caller, not a data condition; normal flow can never hit it.
	ErrNotFit = errors.New("vector space model not fitted")
)
