package ratonica

import "github.com/kailas-cloud/ratonica/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrSearchNotFound      = domain.ErrSearchNotFound
	ErrProductNotFound     = domain.ErrProductNotFound
	ErrInvalidQuery        = domain.ErrInvalidQuery
	ErrInvalidResult       = domain.ErrInvalidResult
	ErrVisionProviderError = domain.ErrVisionProviderError
)
