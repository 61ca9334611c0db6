// Package server exposes wrapper registries to remote forms over WebSocket.
//
// A browser (or any client) opens /ws and describes its form as a stream of
// JSON messages: mount a field with its rules, report change and blur
// events, ask for a submit. The server runs the same wrappers and registry
// the terminal form uses and answers with the resulting display state.
//
// # Messages
//
// Client to server, one JSON object per WebSocket text message:
//
//	{"type": "mount", "field": "email", "position": {"x": 0, "y": 120},
//	 "rules": [{"error": true, "level": "error", "behaviour": "lostfocus"}]}
//	{"type": "change", "field": "email"}
//	{"type": "blur", "field": "email"}
//	{"type": "validate"}
//
// Types: mount, rules, change, blur, emulate_blur, submit, focus, validate,
// unmount. Every message is answered with a "state" message carrying a
// snapshot of each mounted field and the form's validity. A field that must
// take focus is announced first with a "focus" message holding the field
// name and the vertical offset to keep above it. Bad messages get an
// "error" reply; the connection stays open.
//
// # Sessions
//
// Each connection owns one registry. Messages are handled one at a time on
// the connection's goroutine, which is also the only writer. Pings are sent
// with WriteControl, which gorilla/websocket allows concurrently.
//
// # Endpoints
//
//   - /ws: the session WebSocket
//   - /metrics: prometheus metrics (registry and session counters)
//   - /healthz: liveness probe
//
// # Usage Example
//
//	srv, err := server.New(&server.Config{Host: "127.0.0.1", Port: 8765})
//	if err != nil {
//	    return err
//	}
//	return srv.Start(ctx)
package server
