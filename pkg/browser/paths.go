package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

type browserPaths struct {
	chromeExecutable  string
	chromeConfigDir   string
	firefoxExecutable string
	firefoxConfigDir  string
}

// platformPaths returns the well-known install locations for the current OS.
func platformPaths() (*browserPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	switch runtime.GOOS {
	case "linux":
		return &browserPaths{
			chromeExecutable:  "/usr/bin/google-chrome",
			chromeConfigDir:   filepath.Join(home, ".config", "google-chrome"),
			firefoxExecutable: "/usr/bin/firefox",
			firefoxConfigDir:  filepath.Join(home, ".mozilla", "firefox"),
		}, nil

	case "darwin":
		return &browserPaths{
			chromeExecutable:  "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			chromeConfigDir:   filepath.Join(home, "Library", "Application Support", "Google", "Chrome"),
			firefoxExecutable: "/Applications/Firefox.app/Contents/MacOS/firefox",
			firefoxConfigDir:  filepath.Join(home, "Library", "Application Support", "Firefox"),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
	}
}
