package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
	"github.com/lynxmind/cloudflare-agent/pkg/cloudflare"
	"github.com/lynxmind/cloudflare-agent/pkg/collector"
	"github.com/lynxmind/cloudflare-agent/pkg/sections"
)

// Rendering a report and feeding the output back through the check
// pipeline exercises every registered parser against what the agent
// actually emits.
func agentOutput(t *testing.T) string {
	report := &collector.Report{
		Zones: map[string]*collector.ZoneData{
			"example.com": {
				ID:         "zone-1",
				CacheLevel: "aggressive",
				Analytics: &cloudflare.ZoneAnalytics{
					Requests:  cloudflare.AnalyticsBreakdown{All: 1000, Cached: 734},
					Bandwidth: cloudflare.AnalyticsBreakdown{All: 1 << 30},
				},
				DNSRecords: []cloudflare.DNSRecord{{Type: "A"}, {Type: "MX"}},
				SSLStatus:  "full",
				Firewall: &cloudflare.SecurityEvents{Events: []cloudflare.FirewallEvent{
					{Action: "block"},
				}},
			},
		},
		Workers: []cloudflare.WorkerScript{{ID: "api-worker"}},
		D1:      []cloudflare.D1Database{{UUID: "db-uuid", Name: "appdb", FileSize: 4096}},
		Secrets: map[string]collector.StoreInfo{"default": {ID: "store-1", SecretsCount: 3}},
		Devices: []cloudflare.Device{{ID: "dev-1", Name: "laptop"}},
		Apps:    []cloudflare.AccessApp{{ID: "app-1", Name: "Wiki"}},
		GatewayAccount: &cloudflare.GatewayAccount{
			ID: "gw-tag", ProviderName: "Cloudflare",
		},
	}
	var buf bytes.Buffer
	sections.NewWriter(&buf).Render(report)
	return buf.String()
}

func TestEndToEndDiscoverAndCheck(t *testing.T) {
	sectionLines := checks.SplitSections(agentOutput(t))

	discovered := map[string]bool{}
	for _, d := range checks.Discover(sectionLines) {
		discovered[d.Plugin.ServiceName(d.Service.Item)] = true
	}
	for _, service := range []string{
		"Cloudflare CDN Cache example.com",
		"Cloudflare DNS example.com",
		"Cloudflare SSL/TLS example.com",
		"Cloudflare Firewall example.com",
		"Cloudflare Worker api-worker",
		"Cloudflare D1 appdb",
		"Cloudflare Secrets default",
		"Cloudflare WARP Device dev-1",
		"Cloudflare Access App app-1",
		"Cloudflare Gateway gateway",
	} {
		assert.True(t, discovered[service], service)
	}
	// No Pages projects in the report, so no Pages section or service.
	for service := range discovered {
		assert.NotContains(t, service, "Cloudflare Pages")
	}

	worst := checks.StateOK
	for _, res := range checks.Run(sectionLines, checks.Rules{}) {
		worst = worst.Worst(res.State)
	}
	assert.Equal(t, checks.StateOK, worst)
}

func TestEndToEndRulesApply(t *testing.T) {
	sectionLines := checks.SplitSections(agentOutput(t))
	rules := checks.Rules{
		"cloudflare_cdn_cache": {
			"example.com": checks.Params{"cache_hit_rate": []interface{}{80, 50}},
		},
	}

	var cdnState checks.State
	for _, res := range checks.Run(sectionLines, rules) {
		if res.Plugin == "cloudflare_cdn_cache" {
			cdnState = res.State
		}
	}
	// 73.40% is below the configured 80% warn threshold.
	assert.Equal(t, checks.StateWarn, cdnState)
}

func TestLoadRules(t *testing.T) {
	rules, err := loadRules("")
	require.NoError(t, err)
	assert.Empty(t, rules)

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
cloudflare_dns:
  example.com:
    dns_records_total: [100, 500]
`), 0644))

	rules, err = loadRules(path)
	require.NoError(t, err)
	require.Contains(t, rules, "cloudflare_dns")
	levels := rules["cloudflare_dns"]["example.com"].Levels("dns_records_total")
	require.NotNil(t, levels)
	assert.Equal(t, 100.0, levels.Warn)
}

func TestLoadRulesRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
cloudflare_dns:
  example.com:
    no_such_parameter: 1
`), 0644))

	_, err := loadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_parameter")
}
