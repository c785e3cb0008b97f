// Package ssltls checks the per-zone SSL/TLS section.  The ssl setting
// value is matched against configurable warn/crit trigger values.
package ssltls

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

// SectionName is the agent section this check consumes.
const SectionName = "cloudflare_ssl_tls"

// Section maps zone name to its attribute values.
type Section map[string]map[string]string

// Parse regroups zone.<zone>.<attr>=value lines by zone.
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

// Check evaluates one zone.  An unreported ssl status goes UNKNOWN; a
// reported one is compared against the configured trigger values, warning
// on "flexible" by default.
func Check(item string, params checks.Params, parsed interface{}, out checks.Output) {
	section := parsed.(Section)
	zone, ok := section[item]
	if !ok {
		out.Result(checks.Result{State: checks.StateUnknown, Summary: fmt.Sprintf("Zone '%s' not found", item)})
		return
	}

	status := zone["ssl_status"]
	if status == "" {
		status = "unknown"
	}
	state := checks.StateOK
	if status != "unknown" {
		warnOn := params.String("ssl_status_warn", "flexible")
		critOn := params.String("ssl_status_crit", "off")
		switch {
		case critOn != "none" && status == critOn:
			state = checks.StateCrit
		case warnOn != "none" && status == warnOn:
			state = checks.StateWarn
		}
	} else {
		state = checks.StateUnknown
	}
	out.Result(checks.Result{State: state, Summary: fmt.Sprintf("SSL status: %s", status)})

	if alt, ok := zone["ssl_status_alt"]; ok {
		out.Result(checks.Result{State: checks.StateOK, Notice: fmt.Sprintf("SSL status (alt): %s", alt)})
	}
}

func init() {
	checks.RegisterSection(&checks.AgentSection{Name: SectionName, Parse: Parse})
	checks.RegisterPlugin(&checks.Plugin{
		Name:     "cloudflare_ssl_tls",
		Section:  SectionName,
		Service:  "Cloudflare SSL/TLS %s",
		Ruleset:  "cloudflare_ssl_tls",
		Discover: Discover,
		Check:    Check,
		Defaults: func() checks.Params { return checks.Params{} },
	})
}
