package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		current bool
		want    string
	}{
		{"both months", "2020-01", "2021-10", false, "Jan 2020 - Oct 2021"},
		{"current ignores end", "2020-01", "2021-10", true, "Jan 2020 - Present"},
		{"start only", "2019", "", false, "2019"},
		{"end only", "", "2019-06-15", false, "Jun 2019"},
		{"nothing", "", "", false, ""},
		{"free text kept", "Spring 2018", "Fall 2019", false, "Spring 2018 - Fall 2019"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDateRange(tt.start, tt.end, tt.current))
		})
	}
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, []string{"one\nline", "two"}, paragraphs("one\nline\r\n\r\n\n  two  \n"))
	assert.Nil(t, paragraphs("   "))
}
