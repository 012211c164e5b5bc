package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/remostars/club-standings/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRunner(env map[string]string, out *bytes.Buffer) runner {
	return runner{
		getenv: func(key string) string { return env[key] },
		now:    func() time.Time { return time.Unix(1760486520, 0) },
		stdout: out,
		logger: logging.NewNop(),
	}
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := testRunner(nil, &out).run(nil)
	assert.True(t, errors.Is(err, errUsage))
}

func TestRun_RequiresDBURL(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := testRunner(map[string]string{}, &out).run([]string{"up"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_URL")
}

func TestRun_CreateWritesMigrationPair(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out bytes.Buffer
	r := testRunner(map[string]string{"MIGRATIONS_DIR": dir}, &out)

	require.NoError(t, r.run([]string{"create", "Add Club", "short-name"}))

	for _, name := range []string{
		"1760486520_add_club_short_name.up.sql",
		"1760486520_add_club_short_name.down.sql",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	err := r.run([]string{"create", "add club short name"})
	require.Error(t, err, "second create with the same timestamp must not overwrite")
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	_, err = parseSteps([]string{"0"})
	assert.Error(t, err)

	version, err := parseVersion(" 1760486400 ")
	require.NoError(t, err)
	assert.Equal(t, 1760486400, version)

	_, err = parseVersion("-1")
	assert.Error(t, err)

	target, err := parseTarget("1760486460")
	require.NoError(t, err)
	assert.Equal(t, uint(1760486460), target)

	assert.True(t, envBool("YES"))
	assert.False(t, envBool(""))
}
