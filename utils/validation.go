// utils/validation.go
package utils

import "regexp"

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// ValidateSlug checks the public lookup key: lowercase words joined by
// single hyphens, e.g. "bali-trip-42".
func ValidateSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// ValidateTimeOfDay checks a 24h "HH:MM" string. Itinerary details sort
// lexicographically on it, which only works when the format is fixed.
func ValidateTimeOfDay(t string) bool {
	return timePattern.MatchString(t)
}

// ValidateStars checks a hotel star rating.
func ValidateStars(stars int) bool {
	return stars >= 0 && stars <= 5
}

// ValidateFlightType checks the flight leg tag.
func ValidateFlightType(ft string) bool {
	switch ft {
	case "outbound", "inbound", "internal":
		return true
	}
	return false
}
