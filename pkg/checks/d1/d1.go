// Package d1 checks the D1 databases section, one service per database
// with its file size and the account-wide database total.
package d1

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

// SectionName is the agent section this check consumes.
const SectionName = "cloudflare_d1"

// Section is the parsed D1 inventory.
type Section struct {
	DatabasesTotal int64
	Databases      map[string]map[string]string
}

// Parse reads the databases_total counter and regroups the per-database
// attributes.
func Parse(lines []string) interface{} {
	section := &Section{Databases: map[string]map[string]string{}}
	for _, line := range lines {
		key, value, ok := checks.SplitLine(line)
		if !ok {
			continue
		}
		switch {
		case key == "d1.databases_total":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				section.DatabasesTotal = n
			}
		case strings.HasPrefix(key, "d1.db."):
			parts := strings.SplitN(strings.TrimPrefix(key, "d1.db."), ".", 2)
			if len(parts) != 2 || parts[0] == "" {
				continue
			}
			name, attr := parts[0], parts[1]
			if section.Databases[name] == nil {
				section.Databases[name] = map[string]string{}
			}
			section.Databases[name][attr] = value
		}
	}
	return section
}

// Discover yields one service per database.
func Discover(parsed interface{}) []checks.Service {
	section := parsed.(*Section)
	names := make([]string, 0, len(section.Databases))
	for name := range section.Databases {
		names = append(names, name)
	}
	sort.Strings(names)
	services := make([]checks.Service, 0, len(names))
	for _, name := range names {
		services = append(services, checks.Service{Item: name})
	}
	return services
}

// Check reports one database.
func Check(item string, params checks.Params, parsed interface{}, out checks.Output) {
	section := parsed.(*Section)
	db, ok := section.Databases[item]
	if !ok {
		out.Result(checks.Result{State: checks.StateUnknown, Summary: fmt.Sprintf("Database '%s' not found", item)})
		return
	}

	uuid := db["uuid"]
	if uuid == "" {
		uuid = "unknown"
	}
	createdAt := db["created_at"]
	version := db["version"]

	var size *int64
	if raw, ok := db["size"]; ok && raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			size = &n
			if n >= 0 {
				if levels := params.Levels("d1_size"); levels != nil {
					checks.CheckLevelsUpper(out, "D1 Size", "cloudflare_d1_size", float64(n), levels, checks.RenderBytes)
				} else {
					out.Metric(checks.Metric{Name: "cloudflare_d1_size", Value: float64(n)})
				}
			}
		}
	}

	if section.DatabasesTotal >= 0 {
		if levels := params.Levels("databases_total"); levels != nil {
			checks.CheckLevelsUpper(out, "Total Databases", "cloudflare_d1_databases_total", float64(section.DatabasesTotal), levels, nil)
		} else {
			out.Metric(checks.Metric{Name: "cloudflare_d1_databases_total", Value: float64(section.DatabasesTotal)})
		}
	}

	summaryParts := []string{fmt.Sprintf("UUID: %s", uuid)}
	if size != nil {
		summaryParts = append(summaryParts, fmt.Sprintf("Size: %s", checks.RenderBytes(float64(*size))))
	}
	if version != "" {
		summaryParts = append(summaryParts, fmt.Sprintf("Version: %s", version))
	}
	out.Result(checks.Result{State: checks.StateOK, Summary: strings.Join(summaryParts, " | ")})

	if createdAt != "" {
		out.Result(checks.Result{State: checks.StateOK, Notice: fmt.Sprintf("Created: %s", createdAt)})
	}
}

func init() {
	checks.RegisterSection(&checks.AgentSection{Name: SectionName, Parse: Parse})
	checks.RegisterPlugin(&checks.Plugin{
		Name:     "cloudflare_d1",
		Section:  SectionName,
		Service:  "Cloudflare D1 %s",
		Ruleset:  "cloudflare_d1",
		Discover: Discover,
		Check:    Check,
		Defaults: func() checks.Params { return checks.Params{} },
	})
}
