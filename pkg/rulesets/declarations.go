package rulesets

// Check ruleset declarations, one per check plugin with parameters.

var cacheLevels = []string{"off", "basic", "simplified", "aggressive", "none"}
var sslStatuses = []string{"off", "flexible", "full", "strict", "none"}
var deviceStatuses = []string{"revoked", "active", "none"}

func init() {
	Register(&CheckParameters{
		Name:      "cloudflare_cdn_cache",
		Title:     "Cloudflare CDN Cache Monitoring",
		ItemTitle: "Cloudflare CDN Cache",
		Form: Dictionary{
			Elements: []DictElement{
				{Key: "cache_level_crit", Form: SingleChoice{
					Title:   "Cache Level Critical State",
					Choices: cacheLevels,
					Prefill: "off",
				}},
				{Key: "cache_level_warn", Form: SingleChoice{
					Title:   "Cache Level Warning State",
					Choices: cacheLevels,
					Prefill: "none",
				}},
				{Key: "requests_total", Form: SimpleLevels{
					Title:     "Total Requests Levels (only if analytics data is available)",
					Direction: Upper,
					Prefill:   [2]float64{1000000, 5000000},
				}},
				{Key: "bandwidth_total", Form: SimpleLevels{
					Title:     "Total Bandwidth Levels (only if analytics data is available)",
					Direction: Upper,
					Prefill:   [2]float64{107374182400, 536870912000},
				}},
				{Key: "cached_requests", Form: SimpleLevels{
					Title:     "Cached Requests Levels (only if analytics data is available)",
					Direction: Upper,
					Prefill:   [2]float64{500000, 2500000},
				}},
				{Key: "cache_hit_rate", Form: SimpleLevels{
					Title:     "Cache Hit Rate Levels (only if analytics data is available)",
					Direction: Lower,
					Prefill:   [2]float64{70, 50},
				}},
			},
		},
	})

	Register(&CheckParameters{
		Name:      "cloudflare_dns",
		Title:     "Cloudflare DNS Monitoring",
		ItemTitle: "Cloudflare DNS",
		Form: Dictionary{
			Elements: []DictElement{
				{Key: "dns_records_total", Form: SimpleLevels{
					Title:     "DNS Records Total Levels",
					Direction: Upper,
					Prefill:   [2]float64{100, 500},
				}},
			},
		},
	})

	Register(&CheckParameters{
		Name:      "cloudflare_ssl_tls",
		Title:     "Cloudflare SSL/TLS Monitoring",
		ItemTitle: "Cloudflare SSL/TLS",
		Form: Dictionary{
			Elements: []DictElement{
				{Key: "ssl_status_warn", Form: SingleChoice{
					Title:   "SSL Status Warning State",
					Choices: sslStatuses,
					Prefill: "flexible",
				}},
				{Key: "ssl_status_crit", Form: SingleChoice{
					Title:   "SSL Status Critical State",
					Choices: sslStatuses,
					Prefill: "off",
				}},
			},
		},
	})

	Register(&CheckParameters{
		Name:      "cloudflare_firewall",
		Title:     "Cloudflare Firewall Monitoring",
		ItemTitle: "Cloudflare Firewall",
		Form: Dictionary{
			Elements: []DictElement{
				{Key: "blocked_total", Form: SimpleLevels{
					Title:     "Blocked Events Levels",
					Direction: Upper,
					Prefill:   [2]float64{1000, 5000},
				}},
				{Key: "challenged_total", Form: SimpleLevels{
					Title:     "Challenged Events Levels",
					Direction: Upper,
					Prefill:   [2]float64{500, 2000},
				}},
				{Key: "events_total", Form: SimpleLevels{
					Title:     "Total Events Levels",
					Direction: Upper,
					Prefill:   [2]float64{10000, 50000},
				}},
			},
		},
	})

	Register(&CheckParameters{
		Name:      "cloudflare_workers",
		Title:     "Cloudflare Workers Monitoring",
		ItemTitle: "Cloudflare Worker",
		Form:      Dictionary{},
	})

	Register(&CheckParameters{
		Name:      "cloudflare_pages",
		Title:     "Cloudflare Pages Monitoring",
		ItemTitle: "Cloudflare Pages",
		Form: Dictionary{
			Elements: []DictElement{
				{Key: "projects_total", Form: SimpleLevels{
					Title:     "Total Projects Levels",
					Direction: Upper,
					Prefill:   [2]float64{10, 50},
				}},
			},
		},
	})

	Register(&CheckParameters{
		Name:      "cloudflare_d1",
		Title:     "Cloudflare D1 Monitoring",
		ItemTitle: "Cloudflare D1",
		Form: Dictionary{
			Elements: []DictElement{
				{Key: "d1_size", Form: SimpleLevels{
					Title:     "Database Size Levels",
					Direction: Upper,
					Prefill:   [2]float64{1073741824, 5368709120},
				}},
				{Key: "databases_total", Form: SimpleLevels{
					Title:     "Total Databases Levels",
					Direction: Upper,
					Prefill:   [2]float64{10, 50},
				}},
			},
		},
	})

	Register(&CheckParameters{
		Name:      "cloudflare_secrets",
		Title:     "Cloudflare Secrets Monitoring",
		ItemTitle: "Cloudflare Secrets",
		Form: Dictionary{
			Elements: []DictElement{
				{Key: "secrets_count", Form: SimpleLevels{
					Title:     "Secrets Count Levels",
					Direction: Upper,
					Prefill:   [2]float64{100, 500},
				}},
				{Key: "stores_total", Form: SimpleLevels{
					Title:     "Total Stores Levels",
					Direction: Upper,
					Prefill:   [2]float64{10, 50},
				}},
			},
		},
	})

	Register(&CheckParameters{
		Name:      "cloudflare_warp_devices",
		Title:     "Cloudflare WARP Devices Monitoring",
		ItemTitle: "Cloudflare WARP Device",
		Form: Dictionary{
			Elements: []DictElement{
				{Key: "device_status_warn", Form: SingleChoice{
					Title:   "Device Status Warning State",
					Choices: deviceStatuses,
					Prefill: "revoked",
				}},
				{Key: "device_status_crit", Form: SingleChoice{
					Title:   "Device Status Critical State",
					Choices: deviceStatuses,
					Prefill: "none",
				}},
			},
		},
	})

	Register(&CheckParameters{
		Name:      "cloudflare_access_apps",
		Title:     "Cloudflare Access Apps Monitoring",
		ItemTitle: "Cloudflare Access App",
		Form: Dictionary{
			Elements: []DictElement{
				{Key: "policies_count", Form: SimpleLevels{
					Title:     "Policies Count Levels",
					Direction: Upper,
					Prefill:   [2]float64{50, 100},
				}},
				{Key: "destinations_count", Form: SimpleLevels{
					Title:     "Destinations Count Levels",
					Direction: Upper,
					Prefill:   [2]float64{20, 50},
				}},
				{Key: "idps_count", Form: SimpleLevels{
					Title:     "IdPs Count Levels",
					Direction: Upper,
					Prefill:   [2]float64{10, 20},
				}},
			},
		},
	})

	Register(&CheckParameters{
		Name:      "cloudflare_gateway",
		Title:     "Cloudflare Gateway Monitoring",
		ItemTitle: "Cloudflare Gateway",
		Form: Dictionary{
			Elements: []DictElement{
				{Key: "rules_total", Form: SimpleLevels{
					Title:     "Total Rules Levels",
					Direction: Upper,
					Prefill:   [2]float64{100, 500},
				}},
			},
		},
	})
}

// SpecialAgentForm declares the datasource-program parameters of the
// special agent.
func SpecialAgentForm() Dictionary {
	return Dictionary{
		Title: "Cloudflare",
		Elements: []DictElement{
			{Key: "email", Required: true, Form: String{Title: "Cloudflare Email", MinLength: 1}},
			{Key: "api_token", Required: true, Form: Password{Title: "API Token"}},
			{Key: "account_id", Form: String{Title: "Account ID"}},
			{Key: "timeout", Form: Integer{Title: "Timeout", Prefill: 30, Min: 1, Max: 300}},
			{Key: "cdn_cache", Form: BooleanChoice{Title: "CDN/Cache Collection", Label: "Enable CDN/Cache Collection"}},
			{Key: "dns", Form: BooleanChoice{Title: "DNS Records Collection", Label: "Enable DNS Records Collection"}},
			{Key: "ssl_tls", Form: BooleanChoice{Title: "SSL/TLS Collection", Label: "Enable SSL/TLS Collection"}},
			{Key: "firewall", Form: BooleanChoice{Title: "Firewall/DDoS Collection", Label: "Enable Firewall/DDoS Collection"}},
			{Key: "workers_pages", Form: BooleanChoice{Title: "Workers/Pages Collection", Label: "Enable Workers/Pages Collection"}},
			{Key: "d1", Form: BooleanChoice{Title: "D1 Databases Collection", Label: "Enable D1 Databases Collection"}},
			{Key: "secrets", Form: BooleanChoice{Title: "Secrets Stores Collection", Label: "Enable Secrets Stores Collection"}},
			{Key: "devices", Form: BooleanChoice{Title: "WARP Devices Collection", Label: "Enable WARP Devices Collection"}},
			{Key: "apps", Form: BooleanChoice{Title: "Access Apps Collection", Label: "Enable Access Apps Collection"}},
			{Key: "gateway", Form: BooleanChoice{Title: "Gateway Collection", Label: "Enable Gateway Collection"}},
			{Key: "analytics", Form: BooleanChoice{Title: "Zero Trust Analytics Collection", Label: "Enable Zero Trust Analytics Collection"}},
			{Key: "fetch_all", Form: BooleanChoice{Title: "Fetch All Resources", Label: "Fetch All Resources"}},
			{Key: "verbose", Form: BooleanChoice{Title: "Debug Mode", Label: "Enable Debug Logging"}},
		},
	}
}
