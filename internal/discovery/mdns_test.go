package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func entry(instance, host string, port int, v4, v6 []net.IP, txt ...string) *zeroconf.ServiceEntry {
	e := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
	e.HostName = host
	e.Port = port
	e.AddrIPv4 = v4
	e.AddrIPv6 = v6
	e.Text = txt
	return e
}

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
		wantURL  string
	}{
		{
			name:     "IPv4 server",
			entry:    entry("laptop", "laptop.local.", 8765, []net.IP{net.ParseIP("192.168.4.16")}, nil, "path=/ws", "version=1.0.0"),
			wantIP:   "192.168.4.16",
			wantPort: 8765,
			wantURL:  "ws://192.168.4.16:8765/ws",
		},
		{
			name:     "no port defaults",
			entry:    entry("box", "box.local.", 0, []net.IP{net.ParseIP("10.0.0.5")}, nil),
			wantIP:   "10.0.0.5",
			wantPort: DefaultPort,
			wantURL:  "ws://10.0.0.5:8765/ws",
		},
		{
			name:     "custom path",
			entry:    entry("box", "box.local.", 9000, []net.IP{net.ParseIP("10.0.0.5")}, nil, "path=/forms/ws"),
			wantIP:   "10.0.0.5",
			wantPort: 9000,
			wantURL:  "ws://10.0.0.5:9000/forms/ws",
		},
		{
			name:     "IPv6 only",
			entry:    entry("v6", "v6.local.", 8765, nil, []net.IP{net.ParseIP("fe80::1")}),
			wantIP:   "fe80::1",
			wantPort: 8765,
			wantURL:  "ws://[fe80::1]:8765/ws",
		},
		{
			name:     "prefers IPv4",
			entry:    entry("both", "both.local.", 8765, []net.IP{net.ParseIP("192.168.1.50")}, []net.IP{net.ParseIP("fe80::2")}),
			wantIP:   "192.168.1.50",
			wantPort: 8765,
			wantURL:  "ws://192.168.1.50:8765/ws",
		},
		{
			name:    "no address",
			entry:   entry("lost", "lost.local.", 8765, nil, nil),
			wantNil: true,
		},
		{
			name:    "no instance",
			entry:   entry("", "anon.local.", 8765, []net.IP{net.ParseIP("192.168.1.1")}, nil),
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if svc != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", svc)
				}
				return
			}
			if svc == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil service")
			}
			if svc.IP != tt.wantIP {
				t.Errorf("svc.IP = %v, want %v", svc.IP, tt.wantIP)
			}
			if svc.Port != tt.wantPort {
				t.Errorf("svc.Port = %v, want %v", svc.Port, tt.wantPort)
			}
			if got := svc.URL(); got != tt.wantURL {
				t.Errorf("svc.URL() = %v, want %v", got, tt.wantURL)
			}
			if time.Since(svc.DiscoveredAt) > time.Second {
				t.Error("DiscoveredAt should be recent")
			}
		})
	}
}

func TestParseServiceEntryMetadata(t *testing.T) {
	svc := parseServiceEntry(entry("laptop", "laptop.local.", 8765,
		[]net.IP{net.ParseIP("192.168.4.16")}, nil, "version=1.2.3", "flag"))
	if svc == nil {
		t.Fatal("parseServiceEntry() = nil")
	}
	if got := svc.GetMetadata(TXTVersion); got != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", got)
	}
	if _, ok := svc.Metadata["flag"]; !ok {
		t.Error("key without value should be kept")
	}
	if got := svc.GetMetadata("missing"); got != "" {
		t.Errorf("missing key = %q, want empty", got)
	}
	if parseServiceEntry(nil) != nil {
		t.Error("nil entry should parse to nil")
	}
}

func TestServiceString(t *testing.T) {
	svc := &Service{Instance: "laptop", Hostname: "laptop.local.", IP: "10.0.0.1", Port: 8765}
	want := "formguard laptop (laptop.local.) at 10.0.0.1:8765"
	if got := svc.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	var empty Service
	if empty.GetMetadata("path") != "" {
		t.Error("nil metadata should read as empty")
	}
}

func TestNewScanner(t *testing.T) {
	if s := NewScanner(); s.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", s.Timeout, DefaultScanTimeout)
	}
}
