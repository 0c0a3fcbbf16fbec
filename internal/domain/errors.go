package domain

import "errors"

var (
	// ErrSearchNotFound signals a missing saved search.
	ErrSearchNotFound = errors.New("search not found")
	// ErrProductNotFound signals a missing catalog product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidQuery signals a search query with missing or unsupported fields.
	ErrInvalidQuery = errors.New("invalid search query")
	// ErrInvalidResult signals a search result that cannot be saved.
	ErrInvalidResult = errors.New("invalid search result")
	// ErrInvalidFilter signals inconsistent filter options.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrVisionProviderError signals an image analysis provider failure.
	ErrVisionProviderError = errors.New("vision provider error")
)
