package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// NoState is the state recorded when a hometown does not end in a state name
const NoState = "NONE"

// ParseTime converts a display time such as "1:02.50" or "23.14" to seconds.
// Purely alphabetic codes like "DNS" or "DQ" yield nil without an error; any
// other non-numeric input is a parse error.
func ParseTime(display string) (*float64, error) {
	display = strings.TrimSpace(display)

	if minutes, seconds, found := strings.Cut(display, ":"); found {
		m, err := strconv.ParseFloat(strings.TrimSpace(minutes), 64)
		if err != nil {
			return nil, fmt.Errorf("parse minutes of %q: %w", display, err)
		}
		s, err := strconv.ParseFloat(strings.TrimSpace(seconds), 64)
		if err != nil {
			return nil, fmt.Errorf("parse seconds of %q: %w", display, err)
		}
		total := m*60 + s
		return &total, nil
	}

	if isAlpha(display) {
		return nil, nil
	}

	total, err := strconv.ParseFloat(display, 64)
	if err != nil {
		return nil, fmt.Errorf("parse time %q: %w", display, err)
	}
	return &total, nil
}

// State returns the state part of a "City, ST" hometown string, or NoState
// when the last segment is not purely alphabetic
func State(hometown string) string {
	segments := strings.Split(hometown, ",")
	last := strings.TrimSpace(segments[len(segments)-1])
	if isAlpha(last) {
		return last
	}
	return NoState
}

// City returns every segment of a hometown string except the last one, trimmed
// and joined by spaces
func City(hometown string) string {
	segments := strings.Split(hometown, ",")
	segments = segments[:len(segments)-1]
	for i, s := range segments {
		segments[i] = strings.TrimSpace(s)
	}
	return strings.Join(segments, " ")
}

// SplitHometown splits a hometown string into its city and state
func SplitHometown(hometown string) (city, state string) {
	return City(hometown), State(hometown)
}

// CleanName normalizes a swimmer name. "Last, First" becomes "First Last",
// names with more than two comma separated parts are joined in order and
// single tokens are returned unchanged.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	if strings.Contains(name, ",") {
		var parts []string
		for _, p := range strings.Split(name, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 2 {
			return strings.TrimSpace(parts[1] + " " + parts[0])
		}
		return strings.Join(parts, " ")
	}

	tokens := strings.Fields(name)
	if len(tokens) == 1 {
		return tokens[0]
	}
	return strings.Join(tokens, " ")
}

// HrefID returns the last non-empty path segment of a link such as
// "/swimmer/123456" or "/team/117/"
func HrefID(href string) string {
	segments := strings.Split(strings.TrimRight(href, "/"), "/")
	return segments[len(segments)-1]
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
