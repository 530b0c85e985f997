// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package store

import "strings"

// NormalizePhone reduces a phone number to bare digits so that lookups
// match regardless of formatting. A leading "+", spaces, dashes, dots and
// parentheses are stripped on both the stored and the queried side.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneMatches reports whether a stored contact number matches a queried
// one after normalization. Matching is by substring, so a query with a
// country prefix still finds a record stored without one.
func PhoneMatches(stored, query string) bool {
	s := NormalizePhone(stored)
	q := NormalizePhone(query)
	if s == "" || q == "" {
		return false
	}
	return strings.Contains(s, q) || strings.Contains(q, s)
}
