package placement

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = Defaults{
	Steam: "C:/Program Files (x86)/Steam/steamapps/common/Among Us",
	Epic:  "C:/Program Files/Epic Games/AmongUs",
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		choice Choice
		want   string
	}{
		{
			name:   "steam default ignores custom path",
			choice: Choice{Steam: true, CustomPath: "D:/Games/ignored"},
			want:   testDefaults.Steam,
		},
		{
			name:   "epic default",
			choice: Choice{Epic: true, CustomPath: "D:/Games/ignored"},
			want:   testDefaults.Epic,
		},
		{
			name:   "steam wins over epic",
			choice: Choice{Steam: true, Epic: true},
			want:   testDefaults.Steam,
		},
		{
			name:   "custom with steam",
			choice: Choice{Steam: true, Custom: true, CustomPath: "D:/Games/Among Us"},
			want:   "D:/Games/Among Us",
		},
		{
			name:   "custom with epic",
			choice: Choice{Epic: true, Custom: true, CustomPath: "relative/dir/../x"},
			want:   "relative/dir/../x",
		},
		{
			name:   "nothing selected returns custom path verbatim",
			choice: Choice{CustomPath: "Select a directory..."},
			want:   "Select a directory...",
		},
		{
			name:   "custom without platform returns custom path",
			choice: Choice{Custom: true, CustomPath: "/opt/game"},
			want:   "/opt/game",
		},
		{
			name:   "nothing selected and empty path",
			choice: Choice{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.choice, testDefaults, "windows")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_MissingDefault(t *testing.T) {
	_, err := Resolve(Choice{Epic: true}, Defaults{Steam: "/steam"}, "linux")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoDefaultPath))
	assert.Contains(t, err.Error(), "Epic Games")
	assert.Contains(t, err.Error(), "linux")

	got, err := Resolve(Choice{Epic: true, Custom: true, CustomPath: "/epic"}, Defaults{}, "linux")
	require.NoError(t, err)
	assert.Equal(t, "/epic", got)
}

func TestChoicePlatform(t *testing.T) {
	p, err := Choice{Steam: true, Epic: true}.Platform()
	require.NoError(t, err)
	assert.Equal(t, Steam, p)

	p, err = Choice{Epic: true}.Platform()
	require.NoError(t, err)
	assert.Equal(t, Epic, p)

	_, err = Choice{Custom: true, CustomPath: "/x"}.Platform()
	assert.ErrorIs(t, err, ErrNoPlatformSelected)
}

func TestPlatformKeyword(t *testing.T) {
	assert.Equal(t, "steam", Steam.Keyword())
	assert.Equal(t, "epic", Epic.Keyword())
	assert.Equal(t, "", Platform(0).Keyword())

	p, ok := ParsePlatform(" STEAM ")
	assert.True(t, ok)
	assert.Equal(t, Steam, p)
	_, ok = ParsePlatform("gog")
	assert.False(t, ok)
}

func TestDefaultsFor(t *testing.T) {
	win := DefaultsFor("windows", "")
	assert.Equal(t, testDefaults, win)

	linux := DefaultsFor("linux", "/home/u")
	assert.Equal(t, filepath.Join("/home/u", ".local", "share", "Steam", "steamapps", "common", "Among Us"), linux.Steam)
	assert.Empty(t, linux.Epic)

	assert.Equal(t, Defaults{}, DefaultsFor("linux", ""))
	assert.Equal(t, Defaults{}, DefaultsFor("plan9", "/home/u"))

	overridden := win.WithOverrides("", "E:/Epic/AmongUs")
	assert.Equal(t, win.Steam, overridden.Steam)
	assert.Equal(t, "E:/Epic/AmongUs", overridden.Epic)
}
