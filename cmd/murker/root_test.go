package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/murker/internal/app"
	"github.com/zeusync/murker/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootRunsBattle(t *testing.T) {
	out, err := run(t, "3", "--seed", "cli", "--max-turns", "100000")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Entities:\n* <Goblin id=0>\n* <Goblin id=1>\n* <Goblin id=2>\n"), out)
	assert.Contains(t, out, "\nThe victor is <Goblin id=")
}

func TestRootBatchPrintsTally(t *testing.T) {
	out, err := run(t, "2", "--seed", "cli", "--runs", "5", "--parallelism", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Battles: 5\n"), out)
	assert.Contains(t, out, "Victors:\n* <Goblin id=")
	assert.NotContains(t, out, "Entities:")
}

func TestRootRejectsBadArgs(t *testing.T) {
	_, err := run(t, "many")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = run(t, "-1")
	assert.Error(t, err)

	_, err = run(t, "1", "2")
	assert.Error(t, err)

	_, err = run(t, "--runs", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "murker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: file\ngoblins: 7\nruns: 3\nlog:\n  level: error\n"), 0o600))

	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--seed", "flag"}))
	flags := rootFlags{config: path, seed: "flag"}
	env := func(k string) (string, bool) {
		if k == "LOG_LEVEL" {
			return "info", true
		}
		return "", false
	}

	cfg, err := resolveConfig(cmd, flags, []string{"4"}, env)
	require.NoError(t, err)
	assert.Equal(t, "flag", cfg.Seed)
	assert.Equal(t, 4, cfg.Goblins)
	assert.Equal(t, 3, cfg.Runs, "file value kept when the flag is not set")
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestPrintTallyOrdersByWins(t *testing.T) {
	var out bytes.Buffer
	printTally(&out, app.Tally{
		Runs:       6,
		Turns:      120,
		NoSurvivor: 1,
		Victors:    map[string]int{"<Goblin id=2>": 1, "<Goblin id=0>": 3, "<Goblin id=1>": 1},
	})
	assert.Equal(t, `Battles: 6
Turns: 120
No survivor: 1
Undecided: 0
Victors:
* <Goblin id=0>: 3
* <Goblin id=1>: 1
* <Goblin id=2>: 1
`, out.String())
}
