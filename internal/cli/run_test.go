package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"minikv/internal/cli"
	"minikv/internal/engine"
	"minikv/pkg/logger"
	"minikv/pkg/options"
)

func newTestEngine(t *testing.T) engine.Capability {
	t.Helper()

	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()

	eng, err := engine.New(&engine.Config{Options: &opts, Logger: logger.NewNop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func runCLI(t *testing.T, eng engine.Capability, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var out, errOut bytes.Buffer
	code = cli.Run(&out, &errOut, args, eng)
	return out.String(), errOut.String(), code
}

func TestGetOnEmptyStore(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t)

	out, _, code := runCLI(t, eng, "get", "key")
	require.Equal(t, 0, code)
	require.Equal(t, "Key not found\n", out)
}

func TestGetWithDefaultFlagPrintsDefaultOnMiss(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t)

	out, _, code := runCLI(t, eng, "get", "missing", "--default", "fallback")
	require.Equal(t, 0, code)
	require.Equal(t, "fallback\n", out)
}

func TestGetWithDefaultFlagIgnoredOnHit(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t)
	_, _, code := runCLI(t, eng, "set", "k", "v")
	require.Equal(t, 0, code)

	out, _, code := runCLI(t, eng, "get", "k", "--default", "fallback")
	require.Equal(t, 0, code)
	require.Equal(t, "v\n", out)
}

func TestSetThenGet(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t)

	_, _, code := runCLI(t, eng, "set", "key1", "value1")
	require.Equal(t, 0, code)

	_, _, code = runCLI(t, eng, "set", "key2", "value2")
	require.Equal(t, 0, code)

	out, _, code := runCLI(t, eng, "get", "key1")
	require.Equal(t, 0, code)
	require.Equal(t, "value1\n", out)

	out, _, code = runCLI(t, eng, "get", "key2")
	require.Equal(t, 0, code)
	require.Equal(t, "value2\n", out)
}

func TestRemoveOnEmptyDirectoryPrintsKeyNotFoundAndExitsNonzero(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t)

	out, _, code := runCLI(t, eng, "rm", "key")
	require.NotEqual(t, 0, code)
	require.Equal(t, "Key not found\n", out)
}

func TestRemoveExistingKeySucceedsSilently(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t)

	_, _, code := runCLI(t, eng, "set", "k", "v")
	require.Equal(t, 0, code)

	out, _, code := runCLI(t, eng, "rm", "k")
	require.Equal(t, 0, code)
	require.Empty(t, out)

	out, _, code = runCLI(t, eng, "get", "k")
	require.Equal(t, 0, code)
	require.Equal(t, "Key not found\n", out)
}

func TestMissingSubcommandPrintsUsageToStderr(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t)

	_, errOut, code := runCLI(t, eng)
	require.NotEqual(t, 0, code)
	require.Contains(t, errOut, "USAGE")
}

func TestUnknownSubcommandPrintsUsageToStderr(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t)

	_, errOut, code := runCLI(t, eng, "bogus")
	require.NotEqual(t, 0, code)
	require.Contains(t, errOut, "USAGE")
}

func TestMissingArgumentPrintsUsageToStderr(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t)

	_, errOut, code := runCLI(t, eng, "set", "onlykey")
	require.NotEqual(t, 0, code)
	require.Contains(t, errOut, "USAGE")
}

func TestExtraPositionalPrintsUsageToStderr(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t)

	_, errOut, code := runCLI(t, eng, "get", "key", "extra")
	require.NotEqual(t, 0, code)
	require.Contains(t, errOut, "USAGE")
}
