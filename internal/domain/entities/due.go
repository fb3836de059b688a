package entities

import (
	"strings"
	"time"
)

// DueTimeLayout is the lexical form both sides of an overdue comparison are
// normalized to.
const DueTimeLayout = "2006-01-02 15:04:05"

// CombineDue builds the stored due string from the split form fields.
// An absent time part leaves the due date-only.
func CombineDue(date, timePart string) string {
	if timePart == "" {
		return date
	}
	return date + " " + timePart
}

// SplitDue breaks a stored due string back into its date and time parts for
// form pre-fill. A date-only due yields an empty time part.
func SplitDue(due string) (date, timePart string) {
	if i := strings.IndexByte(due, ' '); i >= 0 {
		return due[:i], due[i+1:]
	}
	return due, ""
}

// EffectiveDueInstant returns the instant a todo actually falls due: a due
// with no time component falls due at the end of that day.
func EffectiveDueInstant(due string) string {
	if !strings.Contains(due, " ") {
		return due + " 23:59:59"
	}
	return due
}

// IsOverdue reports whether a due string is strictly in the past relative to
// now. The comparison is lexical on the zero-padded "YYYY-MM-DD HH:MM:SS"
// form, matching the ordering the store uses for the due column.
func IsOverdue(due string, now time.Time) bool {
	return EffectiveDueInstant(due) < now.Format(DueTimeLayout)
}
