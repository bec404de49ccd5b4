package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv writes a word list and an empty config so the user's own settings
// do not leak into the run.
func testEnv(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("the\nquick\nfox\nlist\nword\n"), 0o644))
	cfg := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfg, nil, 0o644))
	return []string{
		"--config", cfg,
		"--dictionary", words,
		"--log-file", filepath.Join(dir, "ayg.log"),
	}
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestUnscramble(t *testing.T) {
	args := append([]string{"unscramble"}, testEnv(t)...)
	code, out, errOut := runCLI(t, append(args, "sitl", "fox", "zzqx")...)

	assert.Equal(t, 0, code, errOut)
	assert.Equal(t, "sitl: list\nfox: correct\nzzqx: no match\n", out)
}

func TestUnscramble_MaxWordLength(t *testing.T) {
	args := append([]string{"unscramble", "--max-word-length", "3"}, testEnv(t)...)
	code, out, _ := runCLI(t, append(args, "wrod")...)

	assert.Equal(t, 0, code)
	assert.Equal(t, "wrod: too long (max 3 letters)\n", out)
}

func TestCheck(t *testing.T) {
	env := testEnv(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(good, []byte("the quick fox"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("The qukc fox"), 0o644))

	code, out, errOut := runCLI(t, append(append([]string{"check"}, env...), good)...)
	assert.Equal(t, 0, code, errOut)
	assert.Equal(t, good+": ok\n", out)

	code, out, errOut = runCLI(t, append(append([]string{"check"}, env...), good, bad)...)
	assert.Equal(t, 1, code)
	assert.Empty(t, errOut)
	assert.Equal(t, good+": ok\n"+bad+": qukc\n", out)
}

func TestCheck_MissingFile(t *testing.T) {
	args := append([]string{"check"}, testEnv(t)...)
	code, _, errOut := runCLI(t, append(args, filepath.Join(t.TempDir(), "nope.txt"))...)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "nope.txt")
}

func TestDictionaryUnavailable(t *testing.T) {
	args := append([]string{"unscramble"}, testEnv(t)...)
	args = append(args, "--dictionary", filepath.Join(t.TempDir(), "missing-words.txt"), "abc")
	code, _, errOut := runCLI(t, args...)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "dictionary unavailable")
}

func TestInvalidFlagValue(t *testing.T) {
	args := append([]string{"unscramble"}, testEnv(t)...)
	code, _, errOut := runCLI(t, append(args, "--log-level", "loud", "abc")...)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "log.level")
}
