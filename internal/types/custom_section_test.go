package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomSection_MarshalTyped(t *testing.T) {
	s := CustomSection{
		ID:      "c1",
		Title:   "Awards",
		Type:    CustomTimeline,
		Content: TimelineContent{{Title: "Best Paper", Date: "2020"}},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1","title":"Awards","type":"timeline","content":[{"title":"Best Paper","date":"2020"}]}`, string(data))
}

func TestCustomSection_MarshalNilContent(t *testing.T) {
	data, err := json.Marshal(CustomSection{ID: "c1", Type: CustomList})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1","title":"","type":"list","content":[]}`, string(data))
}

func TestCustomSection_UnmarshalVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, s *CustomSection)
	}{
		{
			name:  "text",
			input: `{"id":"a","title":"About","type":"text","content":"hello"}`,
			check: func(t *testing.T, s *CustomSection) {
				assert.Equal(t, "hello", s.Text())
			},
		},
		{
			name:  "list typed",
			input: `{"id":"a","type":"list","content":["x","y"]}`,
			check: func(t *testing.T, s *CustomSection) {
				assert.Equal(t, []string{"x", "y"}, s.Items())
			},
		},
		{
			name:  "list encoded in string",
			input: `{"id":"a","type":"list","content":"[\"x\",\"y\"]"}`,
			check: func(t *testing.T, s *CustomSection) {
				assert.Equal(t, []string{"x", "y"}, s.Items())
			},
		},
		{
			name:  "grid encoded empty string",
			input: `{"id":"a","type":"grid","content":""}`,
			check: func(t *testing.T, s *CustomSection) {
				assert.Empty(t, s.Grid())
				assert.True(t, s.IsEmpty())
			},
		},
		{
			name:  "timeline",
			input: `{"id":"a","type":"timeline","content":[{"title":"T","date":"2021"}]}`,
			check: func(t *testing.T, s *CustomSection) {
				require.Len(t, s.Timeline(), 1)
				assert.Equal(t, "2021", s.Timeline()[0].Date)
			},
		},
		{
			name:  "missing type defaults to text",
			input: `{"id":"a","content":null}`,
			check: func(t *testing.T, s *CustomSection) {
				assert.Equal(t, CustomText, s.Type)
				assert.Equal(t, "", s.Text())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s CustomSection
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			tt.check(t, &s)
		})
	}
}

func TestCustomSection_UnmarshalErrors(t *testing.T) {
	var s CustomSection
	assert.Error(t, json.Unmarshal([]byte(`{"type":"carousel","content":[]}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"type":"list","content":{"a":1}}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"type":"text","content":[1]}`), &s))
}

func TestCustomSection_AccessorsOnOtherTypes(t *testing.T) {
	s := NewCustomSection("x")
	assert.Nil(t, s.Items())
	assert.Nil(t, s.Timeline())
	assert.Nil(t, s.Grid())
	assert.True(t, s.IsEmpty())
}
