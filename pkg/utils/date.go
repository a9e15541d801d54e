package utils

import (
	"time"
)

// PrettyDate renders t in UTC, e.g. "19 Oct 2026 - 14:05 UTC".
func PrettyDate(t time.Time) string {
	return t.UTC().Format("02 Jan 2006 - 15:04 MST")
}
