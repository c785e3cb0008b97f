// Package secrets checks the secrets stores section, one service per
// store with its secret count and the account-wide store total.
package secrets

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

// SectionName is the agent section this check consumes.
const SectionName = "cloudflare_secrets"

// Section is the parsed secrets inventory.
type Section struct {
	StoresTotal int64
	Stores      map[string]map[string]string
}

// Parse reads the stores_total counter and regroups the per-store
// attributes.
func Parse(lines []string) interface{} {
	section := &Section{Stores: map[string]map[string]string{}}
	for _, line := range lines {
		key, value, ok := checks.SplitLine(line)
		if !ok {
			continue
		}
		switch {
		case key == "secrets.stores_total":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				section.StoresTotal = n
			}
		case strings.HasPrefix(key, "secrets.store."):
			parts := strings.SplitN(strings.TrimPrefix(key, "secrets.store."), ".", 2)
			if len(parts) != 2 || parts[0] == "" {
				continue
			}
			name, attr := parts[0], parts[1]
			if section.Stores[name] == nil {
				section.Stores[name] = map[string]string{}
			}
			section.Stores[name][attr] = value
		}
	}
	return section
}

// Discover yields one service per store.
func Discover(parsed interface{}) []checks.Service {
	section := parsed.(*Section)
	names := make([]string, 0, len(section.Stores))
	for name := range section.Stores {
		names = append(names, name)
	}
	sort.Strings(names)
	services := make([]checks.Service, 0, len(names))
	for _, name := range names {
		services = append(services, checks.Service{Item: name})
	}
	return services
}

// Check reports one store.
func Check(item string, params checks.Params, parsed interface{}, out checks.Output) {
	section := parsed.(*Section)
	store, ok := section.Stores[item]
	if !ok {
		out.Result(checks.Result{State: checks.StateUnknown, Summary: fmt.Sprintf("Store '%s' not found", item)})
		return
	}

	id := store["id"]
	if id == "" {
		id = "unknown"
	}

	var secretsCount *int64
	if raw, ok := store["secrets_count"]; ok && raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			secretsCount = &n
			if n >= 0 {
				if levels := params.Levels("secrets_count"); levels != nil {
					checks.CheckLevelsUpper(out, "Secrets Count", "cloudflare_secrets_count", float64(n), levels, nil)
				} else {
					out.Metric(checks.Metric{Name: "cloudflare_secrets_count", Value: float64(n)})
				}
			}
		}
	}

	if section.StoresTotal >= 0 {
		if levels := params.Levels("stores_total"); levels != nil {
			checks.CheckLevelsUpper(out, "Total Stores", "cloudflare_secrets_stores_total", float64(section.StoresTotal), levels, nil)
		} else {
			out.Metric(checks.Metric{Name: "cloudflare_secrets_stores_total", Value: float64(section.StoresTotal)})
		}
	}

	summaryParts := []string{fmt.Sprintf("Store ID: %s", id)}
	if secretsCount != nil {
		summaryParts = append(summaryParts, fmt.Sprintf("Secrets: %s", checks.Commas(*secretsCount)))
	}
	out.Result(checks.Result{State: checks.StateOK, Summary: strings.Join(summaryParts, " | ")})
}

func init() {
	checks.RegisterSection(&checks.AgentSection{Name: SectionName, Parse: Parse})
	checks.RegisterPlugin(&checks.Plugin{
		Name:     "cloudflare_secrets",
		Section:  SectionName,
		Service:  "Cloudflare Secrets %s",
		Ruleset:  "cloudflare_secrets",
		Discover: Discover,
		Check:    Check,
		Defaults: func() checks.Params { return checks.Params{} },
	})
}
