package services

import (
	"strconv"
	"strings"
	"time"
)

// ParseROCDate parses a Republic-of-China calendar date of the exact form
// "YYY/M/D" (Gregorian year = YYY + 1911). It returns nil for anything that is
// not a well-formed, valid calendar date: empty or whitespace-only input, a
// segment count other than three, non-integer segments, or out-of-range
// month/day values. It never panics.
func ParseROCDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	parts := strings.Split(text, "/")
	if len(parts) != 3 {
		return nil
	}

	rocYear, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil
	}

	if rocYear <= 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}

	parsed := time.Date(rocYear+1911, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes overflow (e.g. Feb 30 becomes Mar 2); reject any
	// input that did not survive round-trip intact.
	if parsed.Year() != rocYear+1911 || parsed.Month() != time.Month(month) || parsed.Day() != day {
		return nil
	}

	return &parsed
}

// ParseROCRangeEnd parses the trailing date of a tilde-delimited ROC date range
// such as "113/11/12~113/11/14". A range without a tilde or with a malformed
// trailing segment yields nil.
func ParseROCRangeEnd(text string) *time.Time {
	if !strings.Contains(text, "~") {
		return nil
	}

	parts := strings.SplitN(text, "~", 2)
	return ParseROCDate(parts[1])
}
