// Package cdncache checks the per-zone CDN cache section: cache level
// setting, request/bandwidth counters and the cache hit rate.
package cdncache

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

// SectionName is the agent section this check consumes.
const SectionName = "cloudflare_cdn_cache"

// Section maps zone name to its attribute values.
type Section map[string]map[string]string

// Parse regroups zone.<zone>.<attr>=value lines by zone.  The attribute is
// split off the last dot so dotted zone names survive.
func Parse(lines []string) interface{} {
	section := Section{}
	for _, line := range lines {
		key, value, ok := checks.SplitLine(line)
		if !ok || !strings.HasPrefix(key, "zone.") {
			continue
		}
		zone, attr, ok := checks.SplitLastDot(strings.TrimPrefix(key, "zone."))
		if !ok {
			continue
		}
		if section[zone] == nil {
			section[zone] = map[string]string{}
		}
		section[zone][attr] = value
	}
	if len(section) == 0 {
		return nil
	}
	return section
}

// Discover yields one service per zone.
func Discover(parsed interface{}) []checks.Service {
	section := parsed.(Section)
	zones := make([]string, 0, len(section))
	for zone := range section {
		zones = append(zones, zone)
	}
	sort.Strings(zones)
	services := make([]checks.Service, 0, len(zones))
	for _, zone := range zones {
		services = append(services, checks.Service{Item: zone})
	}
	return services
}

// numericMetric handles one counter attribute: emit its metric when the
// value parses non-negative, with level evaluation when configured.
// The returned pointer is nil when the attribute was absent or unparsable.
func numericMetric(out checks.Output, zone map[string]string, attr, label, metricName, paramKey string, params checks.Params, render checks.RenderFunc) *int64 {
	raw, ok := zone[attr]
	if !ok || raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	if n >= 0 {
		if levels := params.Levels(paramKey); levels != nil {
			checks.CheckLevelsUpper(out, label, metricName, float64(n), levels, render)
		} else {
			out.Metric(checks.Metric{Name: metricName, Value: float64(n)})
		}
	}
	return &n
}

// Check evaluates one zone.
func Check(item string, params checks.Params, parsed interface{}, out checks.Output) {
	section := parsed.(Section)
	zone, ok := section[item]
	if !ok {
		out.Result(checks.Result{State: checks.StateUnknown, Summary: fmt.Sprintf("Zone '%s' not found", item)})
		return
	}

	cacheLevel := zone["cache_level"]
	if cacheLevel == "" {
		cacheLevel = "unknown"
	}
	cacheLevelState := checks.StateOK
	if cacheLevel != "unknown" {
		warnOn := params.String("cache_level_warn", "none")
		critOn := params.String("cache_level_crit", "off")
		switch {
		case critOn != "none" && cacheLevel == critOn:
			cacheLevelState = checks.StateCrit
		case warnOn != "none" && cacheLevel == warnOn:
			cacheLevelState = checks.StateWarn
		}
	}

	requestsTotal := numericMetric(out, zone, "requests_total", "Total Requests", "cloudflare_requests_total", "requests_total", params, nil)
	bandwidthTotal := numericMetric(out, zone, "bandwidth_total", "Total Bandwidth", "cloudflare_bandwidth_total", "bandwidth_total", params, checks.RenderBytes)
	cachedRequests := numericMetric(out, zone, "cached_requests", "Cached Requests", "cloudflare_cached_requests", "cached_requests", params, nil)

	var hitRate *float64
	if raw, ok := zone["cache_hit_rate"]; ok && raw != "" {
		if rate, err := strconv.ParseFloat(checks.TrimPercent(raw), 64); err == nil {
			hitRate = &rate
			if rate >= 0 {
				if levels := params.Levels("cache_hit_rate"); levels != nil {
					checks.CheckLevelsLower(out, "Cache Hit Rate", "cloudflare_cache_hit_rate", rate, levels, checks.RenderPercent)
				} else {
					out.Metric(checks.Metric{Name: "cloudflare_cache_hit_rate", Value: rate})
				}
			}
		}
	}

	summaryParts := []string{fmt.Sprintf("Cache level: %s", cacheLevel)}
	hasAnalytics := requestsTotal != nil || bandwidthTotal != nil || cachedRequests != nil || hitRate != nil
	if hasAnalytics {
		if requestsTotal != nil {
			summaryParts = append(summaryParts, fmt.Sprintf("Requests: %s", checks.Commas(*requestsTotal)))
		}
		if hitRate != nil {
			summaryParts = append(summaryParts, fmt.Sprintf("Hit rate: %.2f%%", *hitRate))
		}
	} else {
		hasAnalyticsKeys := false
		for _, attr := range []string{"requests_total", "bandwidth_total", "cached_requests", "cache_hit_rate"} {
			if _, ok := zone[attr]; ok {
				hasAnalyticsKeys = true
				break
			}
		}
		if hasAnalyticsKeys {
			summaryParts = append(summaryParts, "(No analytics data - values may be 0)")
		} else {
			summaryParts = append(summaryParts, "(Analytics not collected)")
		}
	}
	out.Result(checks.Result{State: cacheLevelState, Summary: strings.Join(summaryParts, " | ")})

	var details []string
	if bandwidthTotal != nil {
		details = append(details, fmt.Sprintf("Bandwidth: %s bytes", checks.Commas(*bandwidthTotal)))
	}
	if cachedRequests != nil {
		details = append(details, fmt.Sprintf("Cached requests: %s", checks.Commas(*cachedRequests)))
	}
	if len(details) > 0 {
		out.Result(checks.Result{State: checks.StateOK, Notice: strings.Join(details, " | ")})
	}
}

func init() {
	checks.RegisterSection(&checks.AgentSection{Name: SectionName, Parse: Parse})
	checks.RegisterPlugin(&checks.Plugin{
		Name:     "cloudflare_cdn_cache",
		Section:  SectionName,
		Service:  "Cloudflare CDN Cache %s",
		Ruleset:  "cloudflare_cdn_cache",
		Discover: Discover,
		Check:    Check,
		Defaults: func() checks.Params { return checks.Params{} },
	})
}
