// Package pages checks the Pages projects section, one service per
// project plus the account-wide project total.
package pages

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

// SectionName is the agent section this check consumes.
const SectionName = "cloudflare_pages"

// Section is the parsed Pages inventory.
type Section struct {
	ProjectsTotal int64
	Projects      map[string]map[string]string
}

// Parse reads the projects_total counter and regroups the per-project
// attributes.
func Parse(lines []string) interface{} {
	section := &Section{Projects: map[string]map[string]string{}}
	for _, line := range lines {
		key, value, ok := checks.SplitLine(line)
		if !ok {
			continue
		}
		switch {
		case key == "pages.projects_total":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				section.ProjectsTotal = n
			}
		case strings.HasPrefix(key, "pages.project."):
			parts := strings.SplitN(strings.TrimPrefix(key, "pages.project."), ".", 2)
			if len(parts) != 2 || parts[0] == "" {
				continue
			}
			name, attr := parts[0], parts[1]
			if section.Projects[name] == nil {
				section.Projects[name] = map[string]string{}
			}
			section.Projects[name][attr] = value
		}
	}
	return section
}

// Discover yields one service per project.
func Discover(parsed interface{}) []checks.Service {
	section := parsed.(*Section)
	names := make([]string, 0, len(section.Projects))
	for name := range section.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	services := make([]checks.Service, 0, len(names))
	for _, name := range names {
		services = append(services, checks.Service{Item: name})
	}
	return services
}

// Check reports one project.
func Check(item string, params checks.Params, parsed interface{}, out checks.Output) {
	section := parsed.(*Section)
	project, ok := section.Projects[item]
	if !ok {
		out.Result(checks.Result{State: checks.StateUnknown, Summary: fmt.Sprintf("Project '%s' not found", item)})
		return
	}

	id := project["id"]
	if id == "" {
		id = "unknown"
	}
	createdOn := project["created_on"]
	productionBranch := project["production_branch"]
	if productionBranch == "" {
		productionBranch = "unknown"
	}
	latestDeploymentID := project["latest_deployment_id"]
	latestDeploymentStatus := project["latest_deployment_status"]
	buildCommand := project["build_command"]

	var domainsCount *int64
	if raw, ok := project["domains_count"]; ok && raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			domainsCount = &n
			if n >= 0 {
				out.Metric(checks.Metric{Name: "cloudflare_pages_domains_count", Value: float64(n)})
			}
		}
	}

	if section.ProjectsTotal >= 0 {
		if levels := params.Levels("projects_total"); levels != nil {
			checks.CheckLevelsUpper(out, "Total Projects", "cloudflare_pages_projects_total", float64(section.ProjectsTotal), levels, nil)
		} else {
			out.Metric(checks.Metric{Name: "cloudflare_pages_projects_total", Value: float64(section.ProjectsTotal)})
		}
	}

	summaryParts := []string{fmt.Sprintf("ID: %s", id)}
	if productionBranch != "unknown" {
		summaryParts = append(summaryParts, fmt.Sprintf("Branch: %s", productionBranch))
	}
	if latestDeploymentStatus != "" {
		summaryParts = append(summaryParts, fmt.Sprintf("Deploy: %s", latestDeploymentStatus))
	}
	if domainsCount != nil {
		summaryParts = append(summaryParts, fmt.Sprintf("Domains: %d", *domainsCount))
	}
	out.Result(checks.Result{State: checks.StateOK, Summary: strings.Join(summaryParts, " | ")})

	var details []string
	if createdOn != "" {
		details = append(details, fmt.Sprintf("Created: %s", createdOn))
	}
	if latestDeploymentID != "" {
		details = append(details, fmt.Sprintf("Latest Deploy: %s", latestDeploymentID))
	}
	if buildCommand != "" {
		details = append(details, fmt.Sprintf("Build: %s", buildCommand))
	}
	if len(details) > 0 {
		out.Result(checks.Result{State: checks.StateOK, Notice: strings.Join(details, " | ")})
	}
}

func init() {
	checks.RegisterSection(&checks.AgentSection{Name: SectionName, Parse: Parse})
	checks.RegisterPlugin(&checks.Plugin{
		Name:     "cloudflare_pages",
		Section:  SectionName,
		Service:  "Cloudflare Pages %s",
		Ruleset:  "cloudflare_pages",
		Discover: Discover,
		Check:    Check,
		Defaults: func() checks.Params { return checks.Params{} },
	})
}
