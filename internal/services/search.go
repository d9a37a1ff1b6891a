package services

import "strings"

// maxSearchLength bounds the free-text filter; longer input is cut, not rejected.
const maxSearchLength = 100

// NormalizeSearch prepares a user's search box input for matching against company
// names and job titles: trimmed, lower-cased and with inner whitespace collapsed.
// e.g. "  Senior   Go " -> "senior go"
func NormalizeSearch(q string) string {
	q = strings.Join(strings.Fields(strings.ToLower(q)), " ")
	if len(q) > maxSearchLength {
		cut := 0
		for i := range q {
			if i > maxSearchLength {
				break
			}
			cut = i
		}
		q = strings.TrimSpace(q[:cut])
	}
	return q
}
