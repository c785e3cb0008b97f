// Cloudflare special agent: polls the Cloudflare v4 API for the selected
// resource kinds and prints the collected inventory as section blocks of
// key=value lines on stdout.  Logs go to stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lynxmind/cloudflare-agent/pkg/cloudflare"
	"github.com/lynxmind/cloudflare-agent/pkg/collector"
	"github.com/lynxmind/cloudflare-agent/pkg/sections"

	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var (
	// Version of the agent
	Version string
	// BuiltTime of the agent
	BuiltTime string
)

func init() {
	log.SetFormatter(&prefixed.TextFormatter{})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
}

func main() {
	email := flag.String("email", "", "Cloudflare account email (required with --api-key)")
	apiKey := flag.String("api-key", "", "Cloudflare Global API key")
	apiToken := flag.String("api-token", "", "Cloudflare API token (preferred over --api-key)")
	accountID := flag.String("account-id", "", "account ID for account-level resources (auto-detected when empty)")
	baseURL := flag.String("base-url", cloudflare.DefaultBaseURL, "Cloudflare API endpoint")
	timeout := flag.Int("timeout", 30, "timeout in seconds per API request")
	flag.IntVar(timeout, "t", 30, "shorthand for --timeout")

	var kinds collector.Kinds
	flag.BoolVar(&kinds.CDNCache, "cdn-cache", false, "collect CDN/cache settings and analytics")
	flag.BoolVar(&kinds.DNS, "dns", false, "collect DNS records")
	flag.BoolVar(&kinds.SSLTLS, "ssl-tls", false, "collect SSL/TLS settings")
	flag.BoolVar(&kinds.Firewall, "firewall", false, "collect firewall events")
	flag.BoolVar(&kinds.WorkersPages, "workers-pages", false, "collect Workers scripts and Pages projects")
	flag.BoolVar(&kinds.D1, "d1", false, "collect D1 databases")
	flag.BoolVar(&kinds.Secrets, "secrets", false, "collect secrets stores")
	flag.BoolVar(&kinds.Devices, "devices", false, "collect WARP devices")
	flag.BoolVar(&kinds.Apps, "apps", false, "collect Access applications")
	flag.BoolVar(&kinds.Gateway, "gateway", false, "collect gateway configuration and rules")
	flag.BoolVar(&kinds.Analytics, "analytics", false, "collect Zero Trust analytics")
	all := flag.Bool("all", false, "collect every resource kind")

	version := flag.Bool("version", false, "print agent version")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.BoolVar(verbose, "v", false, "shorthand for --verbose")

	flag.Parse()

	if *version {
		fmt.Printf("agent-version: %s, built-time: %s\n", Version, BuiltTime)
		os.Exit(0)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *apiToken == "" && *apiKey == "" {
		log.Error("Either --api-token or --api-key must be provided")
		os.Exit(1)
	}

	if *all {
		kinds = collector.AllKinds()
	}

	client := cloudflare.NewClient(cloudflare.Config{
		BaseURL:  *baseURL,
		Email:    *email,
		APIKey:   *apiKey,
		APIToken: *apiToken,
		Timeout:  time.Duration(*timeout) * time.Second,
	})

	report := collector.New(client, collector.Config{
		AccountID: *accountID,
		Kinds:     kinds,
	}).Run(context.Background())

	sections.NewWriter(os.Stdout).Render(report)
}
