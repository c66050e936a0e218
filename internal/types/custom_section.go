package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CustomSectionType selects the shape of a custom section's content.
type CustomSectionType string

const (
	CustomText     CustomSectionType = "text"
	CustomList     CustomSectionType = "list"
	CustomTimeline CustomSectionType = "timeline"
	CustomGrid     CustomSectionType = "grid"
)

// Valid reports whether t is a known section type.
func (t CustomSectionType) Valid() bool {
	switch t {
	case CustomText, CustomList, CustomTimeline, CustomGrid:
		return true
	}
	return false
}

// CustomContent is the tagged union stored in CustomSection.Content.
// The concrete type always agrees with the owning section's Type.
type CustomContent interface {
	ContentType() CustomSectionType
	// Empty reports whether there is nothing to render.
	Empty() bool
}

// TextContent is free text.
type TextContent string

// ListContent is an ordered list of items.
type ListContent []string

// TimelineContent is an ordered list of dated entries.
type TimelineContent []TimelineEntry

// GridContent is a list of cards.
type GridContent []GridEntry

// TimelineEntry is one row of a timeline section.
type TimelineEntry struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}

// GridEntry is one card of a grid section.
type GridEntry struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Link        string `json:"link,omitempty"`
}

func (TextContent) ContentType() CustomSectionType     { return CustomText }
func (ListContent) ContentType() CustomSectionType     { return CustomList }
func (TimelineContent) ContentType() CustomSectionType { return CustomTimeline }
func (GridContent) ContentType() CustomSectionType     { return CustomGrid }

func (c TextContent) Empty() bool     { return c == "" }
func (c ListContent) Empty() bool     { return len(c) == 0 }
func (c TimelineContent) Empty() bool { return len(c) == 0 }
func (c GridContent) Empty() bool     { return len(c) == 0 }

// EmptyContent returns the zero content for a section type.
func EmptyContent(t CustomSectionType) CustomContent {
	switch t {
	case CustomList:
		return ListContent{}
	case CustomTimeline:
		return TimelineContent{}
	case CustomGrid:
		return GridContent{}
	default:
		return TextContent("")
	}
}

// CustomSection is a free-form titled section.
type CustomSection struct {
	ID      string
	Title   string
	Type    CustomSectionType
	Content CustomContent
}

// NewCustomSection returns an empty text section.
func NewCustomSection(id string) *CustomSection {
	return &CustomSection{ID: id, Type: CustomText, Content: TextContent("")}
}

// Text returns the text content, or "" for other section types.
func (s *CustomSection) Text() string {
	if c, ok := s.Content.(TextContent); ok {
		return string(c)
	}
	return ""
}

// Items returns the list content, or nil for other section types.
func (s *CustomSection) Items() []string {
	if c, ok := s.Content.(ListContent); ok {
		return c
	}
	return nil
}

// Timeline returns the timeline content, or nil for other section types.
func (s *CustomSection) Timeline() []TimelineEntry {
	if c, ok := s.Content.(TimelineContent); ok {
		return c
	}
	return nil
}

// Grid returns the grid content, or nil for other section types.
func (s *CustomSection) Grid() []GridEntry {
	if c, ok := s.Content.(GridContent); ok {
		return c
	}
	return nil
}

// IsEmpty reports whether the section has no renderable content.
func (s *CustomSection) IsEmpty() bool {
	return s.Content == nil || s.Content.Empty()
}

type customSectionJSON struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Type    CustomSectionType `json:"type"`
	Content json.RawMessage   `json:"content"`
}

// MarshalJSON writes content as typed JSON keyed by the section type.
func (s CustomSection) MarshalJSON() ([]byte, error) {
	t := s.Type
	if t == "" {
		t = CustomText
	}
	content := s.Content
	if content == nil {
		content = EmptyContent(t)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal custom section content: %w", err)
	}
	return json.Marshal(customSectionJSON{ID: s.ID, Title: s.Title, Type: t, Content: raw})
}

// UnmarshalJSON decodes content according to the section type. Content that
// arrives as a JSON-encoded string holding an array (the legacy storage
// format) is decoded once here.
func (s *CustomSection) UnmarshalJSON(data []byte) error {
	var aux customSectionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Type == "" {
		aux.Type = CustomText
	}
	if !aux.Type.Valid() {
		return fmt.Errorf("unknown custom section type %q", aux.Type)
	}

	content, err := DecodeCustomContent(aux.Type, aux.Content)
	if err != nil {
		return fmt.Errorf("custom section %s: %w", aux.ID, err)
	}

	s.ID = aux.ID
	s.Title = aux.Title
	s.Type = aux.Type
	s.Content = content
	return nil
}

// DecodeCustomContent decodes raw JSON into the content variant for t.
func DecodeCustomContent(t CustomSectionType, raw json.RawMessage) (CustomContent, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return EmptyContent(t), nil
	}

	if t == CustomText {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("text content must be a string: %w", err)
		}
		return TextContent(text), nil
	}

	// Legacy: array encoded inside a string field.
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, err
		}
		if encoded == "" {
			return EmptyContent(t), nil
		}
		raw = []byte(encoded)
	}

	switch t {
	case CustomList:
		var items ListContent
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("list content must be an array of strings: %w", err)
		}
		return items, nil
	case CustomTimeline:
		var entries TimelineContent
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("timeline content must be an array of entries: %w", err)
		}
		return entries, nil
	case CustomGrid:
		var entries GridContent
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("grid content must be an array of entries: %w", err)
		}
		return entries, nil
	}
	return nil, fmt.Errorf("unknown custom section type %q", t)
}
