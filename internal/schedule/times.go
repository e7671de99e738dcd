package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockRe = regexp.MustCompile(`^(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)

	// freeTextTimeRe finds the first time-looking token in a sentence,
	// e.g. "3 PM" in "schedule for tomorrow at 3 PM".
	freeTextTimeRe = regexp.MustCompile(`(?i)\b(?:at|for|@)?\s*(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\b`)
)

// ParseClockTime normalizes a loosely formatted time expression ("2",
// "2:30", "2 PM", "2:30pm") into zero-padded 24-hour "HH:MM".
//
// Without an AM/PM marker, an hour of 12 or more is read as 24-hour time
// and a smaller hour is read as AM. That is a documented heuristic, not an
// attempt to guess intent.
func ParseClockTime(text string) (string, bool) {
	m := clockRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(text)))
	if m == nil {
		return "", false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	minute := 0
	if m[2] != "" {
		if minute, err = strconv.Atoi(m[2]); err != nil {
			return "", false
		}
	}
	if minute > 59 {
		return "", false
	}

	switch m[3] {
	case "am":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return "", false
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// ExtractClockTime scans free text for the first time expression and
// normalizes it. Best-effort: ok is false when nothing time-like appears.
func ExtractClockTime(text string) (string, bool) {
	m := freeTextTimeRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return ParseClockTime(m[1])
}
