package evaluation

import (
	"context"
	"errors"
	"net"
	"strings"
)

// BlockedError is returned by providers that recognize a regional or policy rejection themselves.
type BlockedError struct {
	Err error
}

func (e *BlockedError) Error() string {
	return "request blocked by provider: " + e.Err.Error()
}

func (e *BlockedError) Unwrap() error {
	return e.Err
}

// Providers report region blocks only as free text, so this list is matched case-insensitively.
var regionBlockMarkers = []string{
	"unsupported_country_region_territory",
	"country, region, or territory not supported",
	"user location is not supported",
	"not available in your region",
	"not available in your country",
	"unsupported_country",
}

// IsRegionBlocked reports whether a provider error message describes a regional restriction.
func IsRegionBlocked(message string) bool {
	lower := strings.ToLower(message)
	for _, marker := range regionBlockMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Classify maps a provider error to the outcome shown to the user. A nil error is a critique.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeCritique
	}

	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return OutcomeBlocked
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return OutcomeTimedOut
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return OutcomeTimedOut
	}
	if IsRegionBlocked(err.Error()) {
		return OutcomeBlocked
	}
	return OutcomeFailed
}
