package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Service is a discovered formguard session server.
type Service struct {
	// Instance is the advertised instance name, usually the host name.
	Instance string

	// Hostname is the mDNS hostname (e.g. "laptop.local.")
	Hostname string

	// IP prefers IPv4 when the server announced both.
	IP string

	Port int

	// Metadata holds the TXT records: "path" and "version".
	Metadata map[string]string

	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the service
func (s *Service) String() string {
	return fmt.Sprintf("formguard %s (%s) at %s", s.Instance, s.Hostname, net.JoinHostPort(s.IP, strconv.Itoa(s.Port)))
}

// URL returns the session WebSocket URL.
func (s *Service) URL() string {
	path := s.GetMetadata(TXTPath)
	if path == "" {
		path = DefaultPath
	}
	return "ws://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port)) + path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
