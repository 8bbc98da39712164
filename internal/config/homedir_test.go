package config

import (
	"testing"

	"github.com/mitchellh/go-homedir"
)

// homedirReset clears go-homedir's cache so t.Setenv("HOME") takes effect.
func homedirReset(t *testing.T) {
	t.Helper()
	homedir.Reset()
	t.Cleanup(homedir.Reset)
}
