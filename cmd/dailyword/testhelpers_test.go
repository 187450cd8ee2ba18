package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/dailyword/internal/calendar"
	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/daily"
	"github.com/at-ishikawa/dailyword/internal/language"
)

var testNow = time.Date(2024, 3, 10, 8, 30, 0, 0, time.Local)

// setConfigFile sets the global configFile variable and registers a cleanup to restore it.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// setClock pins "today" for the commands.
func setClock(t *testing.T, now time.Time) {
	t.Helper()
	oldClock := clock
	clock = calendar.FixedClock{T: now}
	t.Cleanup(func() { clock = oldClock })
}

// executeCommand runs the root command with args and stdin and returns what it printed.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	rootCommand := newRootCommand()
	rootCommand.SetArgs(args)
	rootCommand.SetIn(strings.NewReader(stdin))
	rootCommand.SetOut(&out)
	rootCommand.SetErr(&out)
	err := rootCommand.Execute()
	return out.String(), err
}

func expectedItemOfDay(t *testing.T, target language.Code) catalog.Item {
	t.Helper()
	item, err := daily.NewSelector(catalog.NewLoader()).ItemOfDay(target, "", calendar.FromTime(testNow))
	require.NoError(t, err)
	return item
}
