package editor

import (
	"fmt"
	"slices"

	"github.com/jonathan/folio-builder/internal/types"
)

// Device is a preview breakpoint.
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceTablet  Device = "tablet"
	DeviceDesktop Device = "desktop"
)

var deviceWidths = map[Device]int{
	DeviceMobile:  375,
	DeviceTablet:  768,
	DeviceDesktop: 1280,
}

// Width returns the viewport width in CSS pixels, or 0 for an unknown device.
func (d Device) Width() int {
	return deviceWidths[d]
}

// Valid reports whether d is a known breakpoint.
func (d Device) Valid() bool {
	_, ok := deviceWidths[d]
	return ok
}

// Zoom bounds, in percent.
const (
	MinZoom     = 50
	MaxZoom     = 150
	ZoomStep    = 10
	DefaultZoom = 100
)

// Settings is session-only editor shell state. It is never persisted with the
// document.
type Settings struct {
	ActiveSection   string `json:"activeSection"`
	Device          Device `json:"device"`
	Zoom            int    `json:"zoom"`
	SidebarExpanded bool   `json:"sidebarExpanded"`
	ActivePage      string `json:"activePage,omitempty"`
	PrefersDark     bool   `json:"prefersDark"`
}

// DefaultSettings returns the shell state of a fresh session for doc.
func DefaultSettings(doc *types.Document) Settings {
	s := Settings{
		ActiveSection:   types.SectionPersonal,
		Device:          DeviceDesktop,
		Zoom:            DefaultZoom,
		SidebarExpanded: true,
	}
	if pages := doc.PageList(); len(pages) > 0 {
		s.ActivePage = pages[0].ID
	}
	return s
}

// ViewportWidth returns the preview width for the selected device.
func (s Settings) ViewportWidth() int {
	return s.Device.Width()
}

// ZoomIn raises the zoom one step, stopping at MaxZoom.
func (s Settings) ZoomIn() Settings {
	s.Zoom = min(s.Zoom+ZoomStep, MaxZoom)
	return s
}

// ZoomOut lowers the zoom one step, stopping at MinZoom.
func (s Settings) ZoomOut() Settings {
	s.Zoom = max(s.Zoom-ZoomStep, MinZoom)
	return s
}

// SettingsPatch is a partial Settings as sent by clients.
type SettingsPatch struct {
	ActiveSection   *string `json:"activeSection,omitempty"`
	Device          *Device `json:"device,omitempty"`
	Zoom            *int    `json:"zoom,omitempty"`
	SidebarExpanded *bool   `json:"sidebarExpanded,omitempty"`
	ActivePage      *string `json:"activePage,omitempty"`
	PrefersDark     *bool   `json:"prefersDark,omitempty"`
}

// SettingsError reports a rejected settings field.
type SettingsError struct {
	Field   string
	Message string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Apply validates p against doc and returns the merged settings. On error s
// is returned unchanged.
func (p SettingsPatch) Apply(s Settings, doc *types.Document) (Settings, error) {
	next := s
	if p.ActiveSection != nil {
		if !slices.Contains(doc.Sections, *p.ActiveSection) {
			return s, &SettingsError{Field: "activeSection", Message: fmt.Sprintf("unknown section %q", *p.ActiveSection)}
		}
		next.ActiveSection = *p.ActiveSection
	}
	if p.Device != nil {
		if !p.Device.Valid() {
			return s, &SettingsError{Field: "device", Message: "must be mobile, tablet or desktop"}
		}
		next.Device = *p.Device
	}
	if p.Zoom != nil {
		z := *p.Zoom
		if z < MinZoom || z > MaxZoom || z%ZoomStep != 0 {
			return s, &SettingsError{Field: "zoom", Message: fmt.Sprintf("must be %d-%d in steps of %d", MinZoom, MaxZoom, ZoomStep)}
		}
		next.Zoom = z
	}
	if p.SidebarExpanded != nil {
		next.SidebarExpanded = *p.SidebarExpanded
	}
	if p.ActivePage != nil {
		if doc.FindPage(*p.ActivePage) == nil {
			return s, &SettingsError{Field: "activePage", Message: fmt.Sprintf("unknown page %q", *p.ActivePage)}
		}
		next.ActivePage = *p.ActivePage
	}
	if p.PrefersDark != nil {
		next.PrefersDark = *p.PrefersDark
	}
	return next, nil
}

// Reconcile repairs settings that point at something the document no longer
// has, e.g. after an undo removed the active page.
func (s Settings) Reconcile(doc *types.Document) Settings {
	if !slices.Contains(doc.Sections, s.ActiveSection) {
		s.ActiveSection = types.SectionPersonal
	}
	if s.ActivePage != "" && doc.FindPage(s.ActivePage) == nil {
		s.ActivePage = ""
		if pages := doc.PageList(); len(pages) > 0 {
			s.ActivePage = pages[0].ID
		}
	}
	return s
}
