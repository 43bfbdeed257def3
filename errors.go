package peoplesearch

import "github.com/slaguerre91/people-search-homepage/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrProfileNotFound    = domain.ErrProfileNotFound
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrWriteFailure       = domain.ErrWriteFailure
	ErrLocalSearch        = domain.ErrLocalSearch
	ErrExternalSearch     = domain.ErrExternalSearch
	ErrRateLimited        = domain.ErrRateLimited
	ErrParseQuotaExceeded = domain.ErrParseQuotaExceeded
	ErrParseProviderError = domain.ErrParseProviderError
)
