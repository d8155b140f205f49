package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// GuideDir returns ~/.slicer-guide.
func GuideDir() string {
	return filepath.Join(home(), ".slicer-guide")
}

// ConfigFile returns ~/.slicer-guide/config.yaml.
func ConfigFile() string {
	return filepath.Join(GuideDir(), "config.yaml")
}

// LogFile returns ~/.slicer-guide/guide.log.
func LogFile() string {
	return filepath.Join(GuideDir(), "guide.log")
}
