package contracts

import "errors"

var (
	// ErrNotFound means the provider does not know the identifier
	ErrNotFound = errors.New("identifier not found")
	// ErrNoData means the provider answered but returned nothing usable
	ErrNoData = errors.New("no data returned")
	// ErrEmptyHistory means the price history came back empty
	ErrEmptyHistory = errors.New("empty price history")
	// ErrUnorderedStatement means statement columns are not most-recent-first
	ErrUnorderedStatement = errors.New("statement columns not ordered most-recent-first")
)
