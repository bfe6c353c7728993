package services

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAvailablePort_SkipsBusyPort(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	busyPort := busy.Addr().(*net.TCPAddr).Port
	if busyPort >= 65535 {
		t.Skip("busy port at top of range")
	}

	port, err := FindAvailablePort(busyPort, busyPort+1)
	if err != nil {
		// The neighbouring port may be taken by another process.
		assert.Contains(t, err.Error(), "no available port")
		return
	}
	assert.Equal(t, busyPort+1, port)
}

func TestFindAvailablePort_AllBusy(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	busyPort := busy.Addr().(*net.TCPAddr).Port
	_, err = FindAvailablePort(busyPort, busyPort)
	assert.Error(t, err)
}

func TestFindAvailablePort_InvalidRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"zero start", 0, 10},
		{"reversed", 9000, 8000},
		{"too high", 65000, 70000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindAvailablePort(tt.start, tt.end)
			assert.ErrorContains(t, err, "invalid port range")
		})
	}
}
