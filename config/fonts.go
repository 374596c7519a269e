package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Font directories probed per OS, mirroring where the common desktop
// fonts actually live.
var fontDirs = map[string][]string{
	"windows": {
		`C:/Windows/Fonts`,
		`C:/Windows/System32/Fonts`,
	},
	"darwin": {
		"/System/Library/Fonts",
		"/Library/Fonts",
		"/usr/local/share/fonts",
	},
	"linux": {
		"/usr/share/fonts",
		"/usr/local/share/fonts",
	},
}

// Candidate filenames, case variants included since most of these
// directories sit on case-sensitive filesystems.
var fontNames = []string{
	"arial.ttf", "Arial.ttf",
	"times.ttf", "Times.ttf",
	"calibri.ttf", "Calibri.ttf",
	"helvetica.ttf", "Helvetica.ttf",
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
}

// DiscoverFonts probes the well-known system font directories for the
// usual candidates and returns the paths that exist. An empty result is
// normal on minimal systems; the font catalog falls back to the built-in
// Go fonts in that case.
func DiscoverFonts() []string {
	dirs := fontDirs[runtime.GOOS]
	if home, err := os.UserHomeDir(); err == nil && runtime.GOOS != "windows" {
		dirs = append(dirs, filepath.Join(home, ".fonts"))
	}

	var found []string
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		for _, name := range fontNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				found = append(found, path)
			}
		}
	}
	return found
}
