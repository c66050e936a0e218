package editor

import (
	"testing"

	"github.com/jonathan/folio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDeviceWidths(t *testing.T) {
	assert.Equal(t, 375, DeviceMobile.Width())
	assert.Equal(t, 768, DeviceTablet.Width())
	assert.Equal(t, 1280, DeviceDesktop.Width())
	assert.Equal(t, 0, Device("watch").Width())
}

func TestDefaultSettings(t *testing.T) {
	resume := DefaultSettings(types.NewDocument(types.KindResume, "", epoch))
	assert.Equal(t, types.SectionPersonal, resume.ActiveSection)
	assert.Equal(t, DeviceDesktop, resume.Device)
	assert.Equal(t, DefaultZoom, resume.Zoom)
	assert.True(t, resume.SidebarExpanded)
	assert.Empty(t, resume.ActivePage)

	portfolio := DefaultSettings(types.NewDocument(types.KindPortfolio, "", epoch))
	assert.Equal(t, "home", portfolio.ActivePage)
}

func TestZoomBounds(t *testing.T) {
	s := Settings{Zoom: 140}
	s = s.ZoomIn()
	assert.Equal(t, 150, s.Zoom)
	s = s.ZoomIn()
	assert.Equal(t, 150, s.Zoom)

	s = Settings{Zoom: 60}.ZoomOut().ZoomOut()
	assert.Equal(t, 50, s.Zoom)
}

func TestSettingsPatch_Apply(t *testing.T) {
	doc := types.NewDocument(types.KindPortfolio, "p-1", epoch)
	base := DefaultSettings(doc)

	tests := []struct {
		name    string
		patch   SettingsPatch
		wantErr string
		check   func(t *testing.T, s Settings)
	}{
		{
			name:  "valid device and zoom",
			patch: SettingsPatch{Device: ptr(DeviceTablet), Zoom: ptr(120)},
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, DeviceTablet, s.Device)
				assert.Equal(t, 768, s.ViewportWidth())
				assert.Equal(t, 120, s.Zoom)
			},
		},
		{name: "zoom too high", patch: SettingsPatch{Zoom: ptr(160)}, wantErr: "zoom"},
		{name: "zoom off step", patch: SettingsPatch{Zoom: ptr(105)}, wantErr: "zoom"},
		{name: "unknown device", patch: SettingsPatch{Device: ptr(Device("watch"))}, wantErr: "device"},
		{name: "unknown section", patch: SettingsPatch{ActiveSection: ptr("hobbies")}, wantErr: "activeSection"},
		{name: "unknown page", patch: SettingsPatch{ActivePage: ptr("blog")}, wantErr: "activePage"},
		{
			name:  "known page and section",
			patch: SettingsPatch{ActivePage: ptr("contact"), ActiveSection: ptr(types.SectionSkills), SidebarExpanded: ptr(false)},
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, "contact", s.ActivePage)
				assert.Equal(t, types.SectionSkills, s.ActiveSection)
				assert.False(t, s.SidebarExpanded)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.patch.Apply(base, doc)
			if tt.wantErr != "" {
				require.Error(t, err)
				var serr *SettingsError
				require.ErrorAs(t, err, &serr)
				assert.Equal(t, tt.wantErr, serr.Field)
				assert.Equal(t, base, got)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestReconcile(t *testing.T) {
	doc := types.NewDocument(types.KindPortfolio, "p-1", epoch)
	s := Settings{ActiveSection: "gone", ActivePage: "deleted"}.Reconcile(doc)
	assert.Equal(t, types.SectionPersonal, s.ActiveSection)
	assert.Equal(t, "home", s.ActivePage)
}
