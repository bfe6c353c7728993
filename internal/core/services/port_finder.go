package services

import (
	"fmt"
	"net"
)

// FindAvailablePort returns the first port in [startPort, endPort] that
// accepts a loopback listener. The port is released before returning, so a
// caller racing another process may still lose it.
func FindAvailablePort(startPort, endPort int) (int, error) {
	if startPort <= 0 || endPort < startPort || endPort > 65535 {
		return 0, fmt.Errorf("invalid port range %d-%d", startPort, endPort)
	}
	for port := startPort; port <= endPort; port++ {
		listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", fmt.Sprint(port)))
		if err != nil {
			continue
		}
		if err := listener.Close(); err != nil {
			return 0, fmt.Errorf("releasing port %d: %w", port, err)
		}
		return port, nil
	}
	return 0, fmt.Errorf("no available port in range %d-%d", startPort, endPort)
}
