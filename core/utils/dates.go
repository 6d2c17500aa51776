package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// dateKeys in the order they cascade: a missing key stops the scan and
// everything after it keeps its default.
var dateKeys = [...]string{"year", "month", "day", "hour", "minute", "second"}

// CoerceDateDict reads year/month/day/hour/minute/second query values and
// builds a time in loc. The second return is false when no component was
// present at all. Components after the first missing one default to their
// zero value (day defaults to 1). A non-integer or out-of-range component
// is an error.
func CoerceDateDict(values url.Values, loc *time.Location) (time.Time, bool, error) {
	parts := map[string]int{
		"year":   1,
		"month":  1,
		"day":    1,
		"hour":   0,
		"minute": 0,
		"second": 0,
	}

	modified := false
	for _, key := range dateKeys {
		raw := values.Get(key)
		if raw == "" {
			break
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("invalid %s value %q", key, raw)
		}
		parts[key] = n
		modified = true
	}

	if !modified {
		return time.Time{}, false, nil
	}

	t := time.Date(parts["year"], time.Month(parts["month"]), parts["day"],
		parts["hour"], parts["minute"], parts["second"], 0, loc)

	// time.Date normalizes out-of-range components; reject anything that
	// did not round-trip.
	if t.Year() != parts["year"] || int(t.Month()) != parts["month"] || t.Day() != parts["day"] ||
		t.Hour() != parts["hour"] || t.Minute() != parts["minute"] || t.Second() != parts["second"] {
		return time.Time{}, false, fmt.Errorf("invalid date components")
	}

	return t, true, nil
}
