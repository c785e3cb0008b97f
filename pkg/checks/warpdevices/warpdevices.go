// Package warpdevices checks the WARP devices section, one service per
// enrolled device.  The device status is matched against configurable
// warn/crit trigger values, warning on "revoked" by default.
package warpdevices

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

// SectionName is the agent section this check consumes.
const SectionName = "cloudflare_warp_devices"

// Section is the parsed device inventory.
type Section struct {
	DevicesTotal int64
	Devices      map[string]map[string]string
}

// Parse reads the devices_total counter and regroups the per-device
// attributes.
func Parse(lines []string) interface{} {
	section := &Section{Devices: map[string]map[string]string{}}
	for _, line := range lines {
		key, value, ok := checks.SplitLine(line)
		if !ok {
			continue
		}
		switch {
		case key == "warp.devices_total":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				section.DevicesTotal = n
			}
		case strings.HasPrefix(key, "warp.device."):
			parts := strings.SplitN(strings.TrimPrefix(key, "warp.device."), ".", 2)
			if len(parts) != 2 || parts[0] == "" {
				continue
			}
			id, attr := parts[0], parts[1]
			if section.Devices[id] == nil {
				section.Devices[id] = map[string]string{}
			}
			section.Devices[id][attr] = value
		}
	}
	return section
}

// Discover yields one service per device.
func Discover(parsed interface{}) []checks.Service {
	section := parsed.(*Section)
	ids := make([]string, 0, len(section.Devices))
	for id := range section.Devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	services := make([]checks.Service, 0, len(ids))
	for _, id := range ids {
		services = append(services, checks.Service{Item: id})
	}
	return services
}

// Check evaluates one device.
func Check(item string, params checks.Params, parsed interface{}, out checks.Output) {
	section := parsed.(*Section)
	device, ok := section.Devices[item]
	if !ok {
		out.Result(checks.Result{State: checks.StateUnknown, Summary: fmt.Sprintf("Device '%s' not found", item)})
		return
	}

	name := device["name"]
	if name == "" {
		name = "unknown"
	}
	platform := device["platform"]
	if platform == "" {
		platform = "unknown"
	}
	version := device["version"]
	if version == "" {
		version = "unknown"
	}
	status := device["status"]
	if status == "" {
		status = "unknown"
	}
	lastSeen := device["last_seen"]

	state := checks.StateOK
	if status != "unknown" {
		warnOn := params.String("device_status_warn", "revoked")
		critOn := params.String("device_status_crit", "none")
		switch {
		case critOn != "none" && status == critOn:
			state = checks.StateCrit
		case warnOn != "none" && status == warnOn:
			state = checks.StateWarn
		}
	} else {
		state = checks.StateUnknown
	}

	summaryParts := []string{fmt.Sprintf("Name: %s", name)}
	if status != "unknown" {
		summaryParts = append(summaryParts, fmt.Sprintf("Status: %s", status))
	}
	out.Result(checks.Result{State: state, Summary: strings.Join(summaryParts, " | ")})

	var details []string
	if platform != "unknown" {
		details = append(details, fmt.Sprintf("Platform: %s", platform))
	}
	if version != "unknown" {
		details = append(details, fmt.Sprintf("Version: %s", version))
	}
	if lastSeen != "" {
		details = append(details, fmt.Sprintf("Last seen: %s", lastSeen))
	}
	if len(details) > 0 {
		out.Result(checks.Result{State: checks.StateOK, Notice: strings.Join(details, " | ")})
	}
}

func init() {
	checks.RegisterSection(&checks.AgentSection{Name: SectionName, Parse: Parse})
	checks.RegisterPlugin(&checks.Plugin{
		Name:     "cloudflare_warp_devices",
		Section:  SectionName,
		Service:  "Cloudflare WARP Device %s",
		Ruleset:  "cloudflare_warp_devices",
		Discover: Discover,
		Check:    Check,
		Defaults: func() checks.Params { return checks.Params{} },
	})
}
