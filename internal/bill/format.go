package bill

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrInvalidDate = errors.New("invalid time value")

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate reads a stored bill date as a calendar date.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// French month names, lower case as the locale writes them.
var months = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate renders "2004-04-04" as "4 Avr. 04".
func FormatDate(raw string) (string, error) {
	t, err := ParseDate(raw)
	if err != nil {
		return "", err
	}

	// A Caser keeps state between calls and cannot be shared.
	month := []rune(cases.Title(language.French).String(months[t.Month()-1]))
	if len(month) > 3 {
		month = month[:3]
	}

	return fmt.Sprintf("%d %s. %02d", t.Day(), string(month), t.Year()%100), nil
}

func FormatStatus(s Status) string {
	switch s {
	case StatusPending:
		return "En attente"
	case StatusAccepted:
		return "Accepté"
	case StatusRefused:
		return "Refusé"
	default:
		return string(s)
	}
}
