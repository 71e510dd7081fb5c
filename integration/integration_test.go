//go:build integration

package integration

import (
	"errors"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildBinary compiles cmd/pingpong into a temporary directory.
func buildBinary(t *testing.T) string {
	t.Helper()

	bin := filepath.Join(t.TempDir(), "pingpong")

	cmd := exec.Command("go", "build", "-o", bin, "../cmd/pingpong")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	return bin
}

// trace holds the numbers printed by one run.
type trace struct {
	prologPid                  int
	fwdRead, fwdWrite          int
	backRead, backWrite        int
	spawnReturned, parentPid   int
	grandparentPid             int
	generated, sent, sendFD    int
	childPid, childParentPid   int
	childReceived, childRecvFD int
	childSendFD                int
	epilogPid, received        int
	recvFD                     int
}

var (
	prologRe = regexp.MustCompile(`Hello, I am PID (\d+):\n` +
		`  - first pipe returns: \[(\d+), (\d+)\]\n` +
		`  - second pipe returns: \[(\d+), (\d+)\]`)
	parentRe = regexp.MustCompile(`Where spawn returns ([1-9]\d*):\n` +
		`  - getpid returns: (\d+)\n` +
		`  - getppid returns: (\d+)\n` +
		`  - random returns: (-?\d+)\n` +
		`  - sending value (-?\d+) via fd=(\d+)`)
	childRe = regexp.MustCompile(`Where spawn returns 0:\n` +
		`  - getpid returns: (\d+)\n` +
		`  - getppid returns: (\d+)\n` +
		`  - received value (-?\d+) via fd=(\d+)\n` +
		`  - echoing value on fd=(\d+) and exiting`)
	epilogRe = regexp.MustCompile(`Hello again, PID (\d+):\n` +
		`  - received value (-?\d+) via fd=(\d+)`)
)

func atoi(t *testing.T, s string) int {
	t.Helper()

	n, err := strconv.Atoi(s)
	require.NoError(t, err)

	return n
}

func parse(t *testing.T, out string) trace {
	t.Helper()

	var tr trace

	m := prologRe.FindStringSubmatch(out)
	require.NotNil(t, m, "prolog missing:\n%s", out)
	tr.prologPid, tr.fwdRead, tr.fwdWrite = atoi(t, m[1]), atoi(t, m[2]), atoi(t, m[3])
	tr.backRead, tr.backWrite = atoi(t, m[4]), atoi(t, m[5])

	m = parentRe.FindStringSubmatch(out)
	require.NotNil(t, m, "parent section missing:\n%s", out)
	tr.spawnReturned, tr.parentPid, tr.grandparentPid = atoi(t, m[1]), atoi(t, m[2]), atoi(t, m[3])
	tr.generated, tr.sent, tr.sendFD = atoi(t, m[4]), atoi(t, m[5]), atoi(t, m[6])

	m = childRe.FindStringSubmatch(out)
	require.NotNil(t, m, "child section missing:\n%s", out)
	tr.childPid, tr.childParentPid = atoi(t, m[1]), atoi(t, m[2])
	tr.childReceived, tr.childRecvFD, tr.childSendFD = atoi(t, m[3]), atoi(t, m[4]), atoi(t, m[5])

	m = epilogRe.FindStringSubmatch(out)
	require.NotNil(t, m, "epilog missing:\n%s", out)
	tr.epilogPid, tr.received, tr.recvFD = atoi(t, m[1]), atoi(t, m[2]), atoi(t, m[3])

	return tr
}

func TestBinary_TraceIsConsistent(t *testing.T) {
	bin := buildBinary(t)

	out, err := exec.Command(bin).Output()
	require.NoError(t, err)

	tr := parse(t, string(out))

	t.Run("pipe descriptors", func(t *testing.T) {
		require.Less(t, tr.fwdRead, tr.fwdWrite)
		require.Less(t, tr.backRead, tr.backWrite)
		require.Equal(t, tr.fwdWrite, tr.sendFD)
		require.Equal(t, tr.backRead, tr.recvFD)
		require.Equal(t, 3, tr.childRecvFD)
		require.Equal(t, 4, tr.childSendFD)
	})

	t.Run("process ids", func(t *testing.T) {
		require.Equal(t, tr.prologPid, tr.epilogPid)
		require.Equal(t, tr.prologPid, tr.parentPid)
		require.Equal(t, tr.prologPid, tr.childParentPid)
		require.Equal(t, tr.spawnReturned, tr.childPid)
		require.NotEqual(t, tr.parentPid, tr.childPid)
		require.Positive(t, tr.grandparentPid)
	})

	t.Run("values", func(t *testing.T) {
		require.Equal(t, tr.generated, tr.sent)
		require.Equal(t, tr.generated, tr.childReceived)
		require.Equal(t, tr.childReceived, tr.received)
		require.Equal(t, tr.sent, tr.received)
	})
}

func TestBinary_FixedValue(t *testing.T) {
	bin := buildBinary(t)

	out, err := exec.Command(bin, "-value", "123456").Output()
	require.NoError(t, err)

	tr := parse(t, string(out))
	require.Equal(t, 123456, tr.received)
}

func TestBinary_InvalidValue(t *testing.T) {
	bin := buildBinary(t)

	err := exec.Command(bin, "-value", "nope").Run()

	exitErr, ok := errors.AsType[*exec.ExitError](err)
	require.True(t, ok)
	require.Equal(t, 2, exitErr.ExitCode())
}
