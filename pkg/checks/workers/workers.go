// Package workers checks the Workers scripts section, one service per
// deployed script.  Purely informational: id, usage model, timestamps.
package workers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

// SectionName is the agent section this check consumes.
const SectionName = "cloudflare_workers"

// Section maps worker name to its attribute values.
type Section map[string]map[string]string

// Parse regroups worker.<name>.<attr>=value lines by worker.
func Parse(lines []string) interface{} {
	section := Section{}
	for _, line := range lines {
		key, value, ok := checks.SplitLine(line)
		if !ok || !strings.HasPrefix(key, "worker.") {
			continue
		}
		parts := strings.SplitN(strings.TrimPrefix(key, "worker."), ".", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		name, attr := parts[0], parts[1]
		if section[name] == nil {
			section[name] = map[string]string{}
		}
		section[name][attr] = value
	}
	if len(section) == 0 {
		return nil
	}
	return section
}

// Discover yields one service per worker.
func Discover(parsed interface{}) []checks.Service {
	section := parsed.(Section)
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)
	services := make([]checks.Service, 0, len(names))
	for _, name := range names {
		services = append(services, checks.Service{Item: name})
	}
	return services
}

// Check reports one worker.
func Check(item string, params checks.Params, parsed interface{}, out checks.Output) {
	section := parsed.(Section)
	worker, ok := section[item]
	if !ok {
		out.Result(checks.Result{State: checks.StateUnknown, Summary: fmt.Sprintf("Worker '%s' not found", item)})
		return
	}

	id := worker["id"]
	if id == "" {
		id = item
	}
	createdOn := worker["created_on"]
	modifiedOn := worker["modified_on"]
	usageModel := worker["usage_model"]
	etag := worker["etag"]

	summaryParts := []string{fmt.Sprintf("ID: %s", id)}
	if usageModel != "" {
		summaryParts = append(summaryParts, fmt.Sprintf("Usage: %s", usageModel))
	}
	if createdOn != "" {
		summaryParts = append(summaryParts, fmt.Sprintf("Created: %s", createdOn))
	}
	out.Result(checks.Result{State: checks.StateOK, Summary: strings.Join(summaryParts, " | ")})

	var details []string
	if modifiedOn != "" {
		details = append(details, fmt.Sprintf("Modified: %s", modifiedOn))
	}
	if etag != "" {
		details = append(details, fmt.Sprintf("ETag: %s", etag))
	}
	if len(details) > 0 {
		out.Result(checks.Result{State: checks.StateOK, Notice: strings.Join(details, " | ")})
	}
}

func init() {
	checks.RegisterSection(&checks.AgentSection{Name: SectionName, Parse: Parse})
	checks.RegisterPlugin(&checks.Plugin{
		Name:     "cloudflare_workers",
		Section:  SectionName,
		Service:  "Cloudflare Worker %s",
		Ruleset:  "cloudflare_workers",
		Discover: Discover,
		Check:    Check,
		Defaults: func() checks.Params { return checks.Params{} },
	})
}
