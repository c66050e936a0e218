package db

import "time"

// nullTime maps the zero time to SQL NULL so the column default applies.
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
