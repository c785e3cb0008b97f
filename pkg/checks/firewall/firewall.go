// Package firewall checks the per-zone firewall section: counts of
// blocked, challenged and allowed events over the collection window.
package firewall

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

// SectionName is the agent section this check consumes.
const SectionName = "cloudflare_firewall"

const firewallMarker = ".firewall."

// Section maps zone name to its counters.
type Section map[string]map[string]int64

// Parse regroups zone.<zone>.firewall.<counter>=value lines by zone.
// Splitting happens on the ".firewall." marker so dotted zone names
// survive.
func Parse(lines []string) interface{} {
	section := Section{}
	for _, line := range lines {
		key, value, ok := checks.SplitLine(line)
		if !ok || !strings.HasPrefix(key, "zone.") {
			continue
		}
		rest := strings.TrimPrefix(key, "zone.")
		idx := strings.Index(rest, firewallMarker)
		if idx <= 0 {
			continue
		}
		zone := rest[:idx]
		counter := rest[idx+len(firewallMarker):]
		if counter == "" {
			continue
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		if section[zone] == nil {
			section[zone] = map[string]int64{}
		}
		section[zone][counter] = n
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

// Check evaluates one zone.
func Check(item string, params checks.Params, parsed interface{}, out checks.Output) {
	section := parsed.(Section)
	zone, ok := section[item]
	if !ok {
		out.Result(checks.Result{State: checks.StateUnknown, Summary: fmt.Sprintf("Zone '%s' not found", item)})
		return
	}

	blocked := zone["blocked_total"]
	challenged := zone["challenged_total"]
	allowed := zone["allowed_total"]
	events := zone["events_total"]

	if blocked >= 0 {
		if levels := params.Levels("blocked_total"); levels != nil {
			checks.CheckLevelsUpper(out, "Blocked", "cloudflare_firewall_blocked", float64(blocked), levels, nil)
		} else {
			out.Metric(checks.Metric{Name: "cloudflare_firewall_blocked", Value: float64(blocked)})
		}
	}
	if challenged >= 0 {
		if levels := params.Levels("challenged_total"); levels != nil {
			checks.CheckLevelsUpper(out, "Challenged", "cloudflare_firewall_challenged", float64(challenged), levels, nil)
		} else {
			out.Metric(checks.Metric{Name: "cloudflare_firewall_challenged", Value: float64(challenged)})
		}
	}
	if allowed >= 0 {
		out.Metric(checks.Metric{Name: "cloudflare_firewall_allowed", Value: float64(allowed)})
	}
	if events >= 0 {
		out.Metric(checks.Metric{Name: "cloudflare_firewall_events_total", Value: float64(events)})
	}

	var summaryParts []string
	if events > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("Events: %d", events))
	}
	if blocked > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("Blocked: %d", blocked))
	}
	if challenged > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("Challenged: %d", challenged))
	}
	if allowed > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("Allowed: %d", allowed))
	}
	if len(summaryParts) == 0 {
		summaryParts = append(summaryParts, "No firewall events")
	}
	out.Result(checks.Result{State: checks.StateOK, Summary: strings.Join(summaryParts, " | ")})

	var details []string
	if blocked > 0 || challenged > 0 {
		details = append(details, fmt.Sprintf("Blocked: %d, Challenged: %d", blocked, challenged))
	}
	if allowed > 0 {
		details = append(details, fmt.Sprintf("Allowed: %d", allowed))
	}
	if len(details) > 0 {
		out.Result(checks.Result{State: checks.StateOK, Notice: strings.Join(details, " | ")})
	}
}

func init() {
	checks.RegisterSection(&checks.AgentSection{Name: SectionName, Parse: Parse})
	checks.RegisterPlugin(&checks.Plugin{
		Name:     "cloudflare_firewall",
		Section:  SectionName,
		Service:  "Cloudflare Firewall %s",
		Ruleset:  "cloudflare_firewall",
		Discover: Discover,
		Check:    Check,
		Defaults: func() checks.Params { return checks.Params{} },
	})
}
