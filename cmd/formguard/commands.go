package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/formguard/internal/discovery"
	"github.com/muurk/formguard/internal/logging"
	"github.com/muurk/formguard/internal/scenario"
	"github.com/muurk/formguard/internal/server"
	"github.com/muurk/formguard/internal/ui"
	"github.com/muurk/formguard/internal/version"
	"github.com/muurk/formguard/internal/wrapper"
)

// Command flags
var (
	outputFormat string
	strict       bool

	serveHost      string
	servePort      int
	serveAdvertise bool
	serveName      string

	scanTimeout int
)

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(discoverCmd)
}

// checkCmd replays a scenario file
var checkCmd = &cobra.Command{
	Use:   "check <scenario.yaml>",
	Short: "Replay a scenario and print the field states after each step",
	Long: `Replay a scenario file against a headless form.

A scenario declares fields with their rules and a list of events (change,
blur, submit, validate, ...). After every event the visible state of each
field is printed: V marks a visible rule, h a hidden one, - an untracked
(immediate) one.`,
	Example: `  # Print a table per step
  formguard check signup.yaml

  # JSON for scripting
  formguard check signup.yaml --format json

  # Fail when the form ends invalid
  formguard check signup.yaml --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, json)")
	checkCmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when the form ends invalid")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	if sc.Settings.Scroll == (wrapper.ScrollSettings{}) {
		sc.Settings.Scroll = settings.Scroll
	}

	report, runErr := scenario.Run(cmd.Context(), sc)

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	case "table":
		printReport(ui.NewPrinter(cmd.OutOrStdout()), path, report, runErr)
	default:
		return fmt.Errorf("unknown format %q (expected table or json)", outputFormat)
	}

	if runErr != nil {
		return runErr
	}
	if strict && !report.Valid {
		return fmt.Errorf("%s: form is invalid", path)
	}
	return nil
}

func printReport(p *ui.Printer, path string, report *scenario.Report, runErr error) {
	name := report.Name
	if name == "" {
		name = path
	}
	p.PrintHeader("Scenario", "formguard check "+path, map[string]string{
		"name":  name,
		"steps": strconv.Itoa(len(report.Frames)),
	})

	for _, f := range report.Frames {
		title := fmt.Sprintf("%d. %s", f.Index+1, f.Step)
		if f.Focused != "" {
			title += "  (focus: " + f.Focused + ")"
		}
		p.PrintSnapshots(title, f.Snapshots)
		p.Newline()
	}

	if runErr != nil {
		p.PrintError("Scenario stopped", runErr, nil)
		return
	}
	last := report.Last()
	details := map[string]string{"steps": strconv.Itoa(len(report.Frames))}
	if last.Focused != "" {
		details["focused"] = last.Focused
	}
	if report.Valid {
		p.PrintSuccess("Form is valid", details)
	} else {
		p.PrintError("Form is invalid", nil, details)
	}
}

// serveCmd starts the session server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve remote forms over WebSocket",
	Long: `Start the session server. Each WebSocket connection on /ws gets its own
form: the client mounts fields and reports events, the server answers with
what each field should display. Prometheus metrics are served on /metrics.`,
	Example: `  # Listen on the configured address (default 127.0.0.1:8765)
  formguard serve

  # Listen on all interfaces and announce over mDNS
  formguard serve --host 0.0.0.0 --advertise

  # Debug logging of every message
  formguard serve --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen address (overrides settings)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides settings)")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "Announce the server over mDNS")
	serveCmd.Flags().StringVar(&serveName, "name", "", "mDNS instance name (default: host name)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := settings.Server
	if cmd.Flags().Changed("host") {
		cfg.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("advertise") {
		cfg.Advertise = serveAdvertise
	}

	srv, err := server.New(&server.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		Scroll: settings.Scroll,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if cfg.Advertise {
		name := serveName
		if name == "" {
			name, _ = os.Hostname()
		}
		shutdown, err := discovery.Advertise(name, cfg.Port, version.Version)
		if err != nil {
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			defer shutdown()
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving forms on ws://%s:%d/ws (ctrl+c to stop)\n", cfg.Host, cfg.Port)
	return srv.Start(cmd.Context())
}

// discoverCmd finds session servers on the network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find formguard servers on the local network",
	Long: `Browse mDNS for servers started with 'formguard serve --advertise' and
list their WebSocket URLs.`,
	Example: `  # Scan for 5 seconds (default)
  formguard discover

  # Longer scan
  formguard discover --timeout 15`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanning for formguard servers (timeout: %ds)...\n\n", scanTimeout)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second
	services, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(services) == 0 {
		fmt.Fprintln(out, "No servers found.")
		fmt.Fprintln(out, "\nTroubleshooting:")
		fmt.Fprintln(out, "  - Start the server with 'formguard serve --advertise'")
		fmt.Fprintln(out, "  - Make sure both machines are on the same network segment")
		fmt.Fprintln(out, "  - Check that UDP port 5353 is not blocked")
		return nil
	}

	fmt.Fprintf(out, "Found %d server(s):\n\n", len(services))
	for i, svc := range services {
		fmt.Fprintf(out, "%d. %s\n", i+1, svc.Instance)
		fmt.Fprintf(out, "   URL:     %s\n", svc.URL())
		if v := svc.GetMetadata(discovery.TXTVersion); v != "" {
			fmt.Fprintf(out, "   Version: %s\n", v)
		}
		fmt.Fprintln(out)
	}
	return nil
}
