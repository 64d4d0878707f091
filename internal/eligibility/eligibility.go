package eligibility

import (
	"strings"
	"time"

	"server/internal/apperr"
)

// MaxAge is the exclusive upper bound for the age filter: candidates are
// eligible while strictly younger than this at submission time.
const MaxAge = 30

const dobLayout = "2006-01-02"

// maxPlausibleAge bounds how far back a date of birth may reach. Anything
// older is treated as bad input, not as an over-age candidate.
const maxPlausibleAge = 120

// Age returns whole years between dob and ref. A birthday not yet reached
// in ref's year decrements the naive year difference.
func Age(dob, ref time.Time) int {
	years := ref.Year() - dob.Year()
	if ref.Month() < dob.Month() ||
		(ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		years--
	}
	return years
}

func IsEligible(dob, ref time.Time) bool {
	return Age(dob, ref) < MaxAge
}

// ParseDOB parses a strict YYYY-MM-DD date of birth. A missing, malformed,
// future, or implausibly old value is a validation error, never a silent
// pass or discard.
func ParseDOB(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, apperr.Validation("dob", "date of birth is required")
	}

	dob, err := time.Parse(dobLayout, value)
	if err != nil {
		return time.Time{}, apperr.Validation("dob", "date of birth must be formatted YYYY-MM-DD")
	}

	now := time.Now()
	if dob.After(now) {
		return time.Time{}, apperr.Validation("dob", "date of birth is in the future")
	}
	if Age(dob, now) > maxPlausibleAge {
		return time.Time{}, apperr.Validation("dob", "date of birth is implausibly old")
	}

	return dob, nil
}
