// Package workdir finds the directory that holds the .modalfocus settings.
package workdir

import (
	"os"
	"path/filepath"
)

const settingsDir = ".modalfocus"

// ResolveBaseDir returns the nearest directory at or above dir that has a
// .modalfocus directory. If none does, dir is returned cleaned, so a first
// 'config set' creates the settings where the command was run.
func ResolveBaseDir(dir string) string {
	if dir == "" {
		return dir
	}
	dir = filepath.Clean(dir)

	for cur := dir; ; {
		if hasSettingsDir(cur) {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return dir
		}
		cur = parent
	}
}

func hasSettingsDir(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, settingsDir))
	return err == nil && fi.IsDir()
}
