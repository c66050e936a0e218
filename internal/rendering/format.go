package rendering

import (
	"strings"
	"time"
)

// formatDateRange renders "Jan 2020 - Present" style ranges. Dates written as
// YYYY-MM or YYYY-MM-DD are shown as month and year; anything else is kept
// verbatim.
func formatDateRange(start, end string, current bool) string {
	start = formatDate(start)
	end = formatDate(end)
	if current {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " - " + end
}

func formatDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return s
}

// paragraphs splits free text on blank lines.
func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
