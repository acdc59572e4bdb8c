package core

import (
	"fmt"
	"regexp"
	"time"
)

// Ledger dates keep the exact lexical form the backend stores, e.g.
// "2023. 08. 17". Grouping uses string identity; calendar math parses
// on demand.
const ledgerDateLayout = "2006. 01. 02"

var ledgerDateRe = regexp.MustCompile(`^\d{4}\.\s\d{2}\.\s\d{2}$`)

// ValidLedgerDate reports whether s is a well-formed ledger date: the fixed
// lexical pattern plus a real calendar day.
func ValidLedgerDate(s string) bool {
	if !ledgerDateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(ledgerDateLayout, s)
	return err == nil
}

// ParseLedgerDate parses a ledger date string into a calendar time.
func ParseLedgerDate(s string) (time.Time, error) {
	t, err := time.Parse(ledgerDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse ledger date %q: %w", s, err)
	}
	return t, nil
}

// FormatLedgerDate renders t in the ledger's lexical form.
func FormatLedgerDate(t time.Time) string {
	return t.Format(ledgerDateLayout)
}

// DayKey returns the ISO day key ("2006-01-02") used by calendar aggregates.
func DayKey(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
