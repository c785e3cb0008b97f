// Package dns checks the per-zone DNS section: total record count and the
// per-type breakdown.
package dns

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

// SectionName is the agent section this check consumes.
const SectionName = "cloudflare_dns"

const typeMarker = ".dns_records_type."

// Section maps zone name to its attribute values.  Per-type counts keep
// their compound "dns_records_type.<T>" key.
type Section map[string]map[string]string

// Parse regroups the section lines by zone.
func Parse(lines []string) interface{} {
	section := Section{}
	for _, line := range lines {
		key, value, ok := checks.SplitLine(line)
		if !ok || !strings.HasPrefix(key, "zone.") {
			continue
		}
		rest := strings.TrimPrefix(key, "zone.")

		var zone, attr string
		if idx := strings.Index(rest, typeMarker); idx >= 0 {
			zone = rest[:idx]
			attr = rest[idx+1:]
		} else {
			var ok bool
			zone, attr, ok = checks.SplitLastDot(rest)
			if !ok {
				continue
			}
		}
		if zone == "" {
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

// metricNameForType sanitizes a record type into a metric name component.
func metricNameForType(recordType string) string {
	return "cloudflare_dns_records_type_" + strings.ReplaceAll(strings.ToLower(recordType), "-", "_")
}

// Check evaluates one zone.
func Check(item string, params checks.Params, parsed interface{}, out checks.Output) {
	section := parsed.(Section)
	zone, ok := section[item]
	if !ok {
		out.Result(checks.Result{State: checks.StateUnknown, Summary: fmt.Sprintf("Zone '%s' not found", item)})
		return
	}

	var recordsTotal *int64
	if raw, ok := zone["dns_records_total"]; ok && raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			recordsTotal = &n
			if n >= 0 {
				if levels := params.Levels("dns_records_total"); levels != nil {
					checks.CheckLevelsUpper(out, "DNS Records Total", "cloudflare_dns_records_total", float64(n), levels, nil)
				} else {
					out.Metric(checks.Metric{Name: "cloudflare_dns_records_total", Value: float64(n)})
				}
			}
		}
	}

	typeCounts := map[string]int64{}
	for attr, value := range zone {
		if !strings.HasPrefix(attr, "dns_records_type.") {
			continue
		}
		recordType := strings.TrimPrefix(attr, "dns_records_type.")
		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil || count <= 0 {
			continue
		}
		typeCounts[recordType] = count
	}
	types := make([]string, 0, len(typeCounts))
	for recordType := range typeCounts {
		types = append(types, recordType)
	}
	sort.Strings(types)
	for _, recordType := range types {
		out.Metric(checks.Metric{Name: metricNameForType(recordType), Value: float64(typeCounts[recordType])})
	}

	var summaryParts []string
	if recordsTotal != nil {
		summaryParts = append(summaryParts, fmt.Sprintf("Total: %s", checks.Commas(*recordsTotal)))
	}
	if len(types) > 0 {
		typeParts := make([]string, 0, len(types))
		for _, recordType := range types {
			typeParts = append(typeParts, fmt.Sprintf("%s: %d", recordType, typeCounts[recordType]))
		}
		summaryParts = append(summaryParts, "Types: "+strings.Join(typeParts, ", "))
	}
	if len(summaryParts) > 0 {
		out.Result(checks.Result{State: checks.StateOK, Summary: strings.Join(summaryParts, " | ")})
	} else {
		out.Result(checks.Result{State: checks.StateOK, Summary: "DNS records: 0"})
	}

	if len(types) > 3 {
		details := make([]string, 0, len(types))
		for _, recordType := range types {
			details = append(details, fmt.Sprintf("%s: %s", recordType, checks.Commas(typeCounts[recordType])))
		}
		out.Result(checks.Result{State: checks.StateOK, Notice: strings.Join(details, " | ")})
	}
}

func init() {
	checks.RegisterSection(&checks.AgentSection{Name: SectionName, Parse: Parse})
	checks.RegisterPlugin(&checks.Plugin{
		Name:     "cloudflare_dns",
		Section:  SectionName,
		Service:  "Cloudflare DNS %s",
		Ruleset:  "cloudflare_dns",
		Discover: Discover,
		Check:    Check,
		Defaults: func() checks.Params { return checks.Params{} },
	})
}
