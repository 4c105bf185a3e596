package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"evalgo.org/eqinv/models"
)

// dottedQuad matches an IPv4 address with each octet in 0-255. One- to
// three-digit octets are accepted, so "010" is valid.
var dottedQuad = regexp.MustCompile(`^((25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)

// IsValidIP reports whether s is a dotted-quad IPv4 address.
func IsValidIP(s string) bool {
	return dottedQuad.MatchString(s)
}

// IsDuplicateIP reports whether any record already uses ip. The comparison
// is an exact string match.
func IsDuplicateIP(records []models.Equipment, ip string) bool {
	for _, e := range records {
		if e.IP == ip {
			return true
		}
	}
	return false
}

// IsPositive reports whether n is strictly greater than zero.
func IsPositive[T int | float64](n T) bool {
	return n > 0
}

// IsInRange reports whether lo <= n <= hi.
func IsInRange(n, lo, hi int) bool {
	return n >= lo && n <= hi
}

// IsNonEmpty reports whether s has any non-whitespace content.
func IsNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsTrimmed reports whether s has no leading or trailing whitespace. The
// loader trims every field, so an untrimmed value would not read back as saved.
func IsTrimmed(s string) bool {
	return s == strings.TrimSpace(s)
}

// IsSingleLine reports whether s contains no line break.
func IsSingleLine(s string) bool {
	return !strings.ContainsAny(s, "\r\n")
}

// IsFinite reports whether f is neither infinite nor NaN.
func IsFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

const (
	MinHoursPerDay = 1
	MaxHoursPerDay = 24
)

// The Parse helpers below are shared by interactive entry and the file
// loader. A token that does not parse and a token that parses to an
// out-of-range value are both rejected, with different messages.

// ParsePositiveFloat parses a strictly positive, finite decimal number.
// strconv accepts "Inf" and "NaN", which are rejected here.
func ParsePositiveFloat(field, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !IsFinite(f) {
		return 0, fmt.Errorf("invalid %s value %q", field, s)
	}
	if !IsPositive(f) {
		return 0, fmt.Errorf("%s must be positive", field)
	}
	return f, nil
}

// ParsePositiveInt parses a strictly positive integer.
func ParsePositiveInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", field, s)
	}
	if !IsPositive(n) {
		return 0, fmt.Errorf("%s must be positive", field)
	}
	return n, nil
}

// ParseHours parses hours of use per day, 1 to 24.
func ParseHours(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid hours of use value %q", s)
	}
	if !IsInRange(n, MinHoursPerDay, MaxHoursPerDay) {
		return 0, fmt.Errorf("hours of use must be between %d and %d", MinHoursPerDay, MaxHoursPerDay)
	}
	return n, nil
}

// ParseFlag parses a yes/no answer. "true"/"false" are accepted too since
// that is how the data file stores booleans.
func ParseFlag(field, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid %s value %q: expected yes/no or true/false", field, s)
}

// ParseRequired trims s and rejects it if nothing is left.
func ParseRequired(field, s string) (string, error) {
	if !IsNonEmpty(s) {
		return "", fmt.Errorf("%s cannot be empty", field)
	}
	return strings.TrimSpace(s), nil
}

// ParseIP checks the dotted-quad format.
func ParseIP(s string) (string, error) {
	ip := strings.TrimSpace(s)
	if !IsValidIP(ip) {
		return "", fmt.Errorf("invalid IP format %q", s)
	}
	return ip, nil
}
