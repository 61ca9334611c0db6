// Package discovery advertises and finds formguard session servers with
// multicast DNS.
//
// `formguard serve --advertise` registers the server as a "_formguard._tcp"
// service whose TXT records carry the WebSocket path and the server
// version. `formguard discover` browses for that service type and lists
// what answered before the timeout.
//
// # Usage Example
//
//	shutdown, err := discovery.Advertise("my-laptop", 8765, version.Version)
//	if err != nil {
//	    return err
//	}
//	defer shutdown()
//
//	services, err := discovery.QuickScan()
//	for _, svc := range services {
//	    fmt.Println(svc.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Servers must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
