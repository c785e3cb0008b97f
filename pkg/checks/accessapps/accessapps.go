// Package accessapps checks the Access applications section, one service
// per application with its policy, destination and IdP counts.
package accessapps

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

// SectionName is the agent section this check consumes.
const SectionName = "cloudflare_access_apps"

// Section is the parsed application inventory.
type Section struct {
	AppsTotal int64
	Apps      map[string]map[string]string
}

// Parse reads the apps_total counter and regroups the per-app attributes.
func Parse(lines []string) interface{} {
	section := &Section{Apps: map[string]map[string]string{}}
	for _, line := range lines {
		key, value, ok := checks.SplitLine(line)
		if !ok {
			continue
		}
		switch {
		case key == "access.apps_total":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				section.AppsTotal = n
			}
		case strings.HasPrefix(key, "access.app."):
			parts := strings.SplitN(strings.TrimPrefix(key, "access.app."), ".", 2)
			if len(parts) != 2 || parts[0] == "" {
				continue
			}
			id, attr := parts[0], parts[1]
			if section.Apps[id] == nil {
				section.Apps[id] = map[string]string{}
			}
			section.Apps[id][attr] = value
		}
	}
	return section
}

// Discover yields one service per application.
func Discover(parsed interface{}) []checks.Service {
	section := parsed.(*Section)
	ids := make([]string, 0, len(section.Apps))
	for id := range section.Apps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	services := make([]checks.Service, 0, len(ids))
	for _, id := range ids {
		services = append(services, checks.Service{Item: id})
	}
	return services
}

func countMetric(out checks.Output, app map[string]string, attr, label, metricName string, params checks.Params) *int64 {
	raw, ok := app[attr]
	if !ok || raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	if n >= 0 {
		if levels := params.Levels(attr); levels != nil {
			checks.CheckLevelsUpper(out, label, metricName, float64(n), levels, nil)
		} else {
			out.Metric(checks.Metric{Name: metricName, Value: float64(n)})
		}
	}
	return &n
}

// Check evaluates one application.
func Check(item string, params checks.Params, parsed interface{}, out checks.Output) {
	section := parsed.(*Section)
	app, ok := section.Apps[item]
	if !ok {
		out.Result(checks.Result{State: checks.StateUnknown, Summary: fmt.Sprintf("App '%s' not found", item)})
		return
	}

	name := app["name"]
	if name == "" {
		name = "unknown"
	}
	domain := app["domain"]
	if domain == "" {
		domain = "unknown"
	}
	appType := app["type"]
	if appType == "" {
		appType = "unknown"
	}
	updatedAt := app["updated_at"]

	policies := countMetric(out, app, "policies_count", "Policies Count", "cloudflare_access_policies_count", params)
	destinations := countMetric(out, app, "destinations_count", "Destinations Count", "cloudflare_access_destinations_count", params)
	idps := countMetric(out, app, "idps_count", "IDPs Count", "cloudflare_access_idps_count", params)

	summaryParts := []string{fmt.Sprintf("Name: %s", name)}
	if domain != "unknown" {
		summaryParts = append(summaryParts, fmt.Sprintf("Domain: %s", domain))
	}
	if appType != "unknown" {
		summaryParts = append(summaryParts, fmt.Sprintf("Type: %s", appType))
	}
	out.Result(checks.Result{State: checks.StateOK, Summary: strings.Join(summaryParts, " | ")})

	var details []string
	if policies != nil {
		details = append(details, fmt.Sprintf("Policies: %d", *policies))
	}
	if destinations != nil {
		details = append(details, fmt.Sprintf("Destinations: %d", *destinations))
	}
	if idps != nil {
		details = append(details, fmt.Sprintf("IDPs: %d", *idps))
	}
	if updatedAt != "" {
		details = append(details, fmt.Sprintf("Updated: %s", updatedAt))
	}
	if len(details) > 0 {
		out.Result(checks.Result{State: checks.StateOK, Notice: strings.Join(details, " | ")})
	}
}

func init() {
	checks.RegisterSection(&checks.AgentSection{Name: SectionName, Parse: Parse})
	checks.RegisterPlugin(&checks.Plugin{
		Name:     "cloudflare_access_apps",
		Section:  SectionName,
		Service:  "Cloudflare Access App %s",
		Ruleset:  "cloudflare_access_apps",
		Discover: Discover,
		Check:    Check,
		Defaults: func() checks.Params { return checks.Params{} },
	})
}
