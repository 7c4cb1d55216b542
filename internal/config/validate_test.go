package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thoreinstein/xcsdk/internal/selection"
	"github.com/thoreinstein/xcsdk/pkg/applesdk"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr []error
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "version too low",
			modify:  func(c *Config) { c.Version = 0 },
			wantErr: []error{ErrVersionTooLow},
		},
		{
			name:   "known platform",
			modify: func(c *Config) { c.Search.Platform = "iPhoneSimulator" },
		},
		{
			name:   "future platform",
			modify: func(c *Config) { c.Search.Platform = "XROS" },
		},
		{
			name:    "platform with wrong case",
			modify:  func(c *Config) { c.Search.Platform = "macosx" },
			wantErr: []error{ErrInvalidPlatform},
		},
		{
			name:    "platform with suffix",
			modify:  func(c *Config) { c.Search.Platform = "MacOSX.platform" },
			wantErr: []error{ErrInvalidPlatform},
		},
		{
			name:    "malformed bound",
			modify:  func(c *Config) { c.Search.MinimumVersion = "14.x" },
			wantErr: []error{applesdk.ErrVersionParse},
		},
		{
			name: "inverted bounds",
			modify: func(c *Config) {
				c.Search.MinimumVersion = "17"
				c.Search.MaximumVersion = "16.4"
			},
			wantErr: []error{ErrInvalidBounds},
		},
		{
			name:    "bad sort",
			modify:  func(c *Config) { c.Search.Sort = "newest" },
			wantErr: []error{selection.ErrInvalidOrder},
		},
		{
			name:    "empty sdks dir",
			modify:  func(c *Config) { c.Search.SDKsDirs = []string{""} },
			wantErr: []error{ErrInvalidPath},
		},
		{
			name:    "null byte in location",
			modify:  func(c *Config) { c.Locations.XcodeApp = "/Applications/X\x00.app" },
			wantErr: []error{ErrInvalidPath},
		},
		{
			name: "multiple problems",
			modify: func(c *Config) {
				c.Version = 0
				c.Search.MaximumVersion = "abc"
			},
			wantErr: []error{ErrVersionTooLow, applesdk.ErrVersionParse},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			errs := Validate(cfg)
			if !assert.Len(t, errs, len(tt.wantErr), "errors: %v", errs) {
				return
			}
			for i, want := range tt.wantErr {
				assert.True(t, errors.Is(errs[i], want), "error %d = %v, want %v", i, errs[i], want)
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.Len(t, Validate(nil), 1)
}

func TestValidate_PlatformSuggestion(t *testing.T) {
	cfg := Default()
	cfg.Search.Platform = "iphoneos"

	errs := Validate(cfg)
	if assert.Len(t, errs, 1) {
		assert.Contains(t, errs[0].Error(), "did you mean iPhoneOS")
	}
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(Default()))

	cfg := Default()
	cfg.Version = 0
	cfg.Search.Sort = "random"
	err := Check(cfg)
	assert.ErrorIs(t, err, ErrVersionTooLow)
	assert.ErrorIs(t, err, selection.ErrInvalidOrder)
}
