package paths_test

import (
	"os"
	"strings"
	"testing"

	"github.com/ruminaider/slicer-guide/internal/paths"
	"github.com/stretchr/testify/assert"
)

func TestGuideDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	assert.True(t, strings.HasPrefix(paths.GuideDir(), home))
	assert.True(t, strings.HasSuffix(paths.GuideDir(), ".slicer-guide"))
}

func TestConfigFile(t *testing.T) {
	assert.True(t, strings.HasPrefix(paths.ConfigFile(), paths.GuideDir()))
	assert.True(t, strings.HasSuffix(paths.ConfigFile(), "config.yaml"))
}

func TestLogFile(t *testing.T) {
	assert.True(t, strings.HasSuffix(paths.LogFile(), "guide.log"))
}
