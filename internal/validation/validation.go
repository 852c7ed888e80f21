// Package validation holds the pure input checks shared by the services.
package validation

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"toiletfinder/internal/errors"
)

const (
	// MaxTextLength bounds descriptions and comments, in characters.
	MaxTextLength = 200
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8

	minRating = 1
	maxRating = 5
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

// ValidateCoordinates parses a latitude/longitude pair and checks its range.
func ValidateCoordinates(lat, lng string) (float64, float64, error) {
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return 0, 0, errors.ErrInvalidCoordinate
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return 0, 0, errors.ErrInvalidCoordinate
	}
	// NaN fails both comparisons.
	if !(latitude >= -90 && latitude <= 90) || !(longitude >= -180 && longitude <= 180) {
		return 0, 0, errors.ErrInvalidCoordinate
	}
	return latitude, longitude, nil
}

// ValidateEmail reports whether s looks like an email address.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateUsername reports whether s is 3-20 letters, digits or underscores.
func ValidateUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// ValidatePassword checks the minimum password length.
func ValidatePassword(s string) error {
	if len([]rune(s)) < MinPasswordLength {
		return errors.ErrWeakPassword
	}
	return nil
}

// ValidateCleanliness parses a cleanliness rating in the range 1-5.
func ValidateCleanliness(v string) (int, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || rating < minRating || rating > maxRating {
		return 0, errors.ErrInvalidRating
	}
	return rating, nil
}

// Sanitize trims s, escapes markup characters and truncates the result to max characters.
func Sanitize(s string, max int) string {
	escaped := html.EscapeString(strings.TrimSpace(s))
	runes := []rune(escaped)
	if len(runes) > max {
		return string(runes[:max])
	}
	return escaped
}
