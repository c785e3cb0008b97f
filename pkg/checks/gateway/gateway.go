// Package gateway checks the Zero Trust gateway section: account
// provider, gateway tag and rule counts by action.  A single fixed
// "gateway" service covers the account.
package gateway

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

// SectionName is the agent section this check consumes.
const SectionName = "cloudflare_gateway"

// Section is the parsed gateway configuration.
type Section struct {
	Account    map[string]string
	RulesTotal int64
	Actions    map[string]int64
}

// Parse reads the account attributes and the rule counters.
func Parse(lines []string) interface{} {
	section := &Section{Account: map[string]string{}, Actions: map[string]int64{}}
	for _, line := range lines {
		key, value, ok := checks.SplitLine(line)
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(key, "gateway.account."):
			section.Account[strings.TrimPrefix(key, "gateway.account.")] = value
		case key == "gateway.rules_total":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				section.RulesTotal = n
			}
		case strings.HasPrefix(key, "gateway.rules_action."):
			action := strings.TrimPrefix(key, "gateway.rules_action.")
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				section.Actions[action] = n
			}
		}
	}
	return section
}

// Discover yields the single gateway service.
func Discover(parsed interface{}) []checks.Service {
	return []checks.Service{{Item: "gateway"}}
}

// Check reports the gateway configuration.
func Check(item string, params checks.Params, parsed interface{}, out checks.Output) {
	section := parsed.(*Section)

	provider := section.Account["provider"]
	if provider == "" {
		provider = "unknown"
	}
	tag := section.Account["tag"]
	if tag == "" {
		tag = "unknown"
	}

	if section.RulesTotal >= 0 {
		if levels := params.Levels("rules_total"); levels != nil {
			checks.CheckLevelsUpper(out, "Total Rules", "cloudflare_gateway_rules_total", float64(section.RulesTotal), levels, nil)
		} else {
			out.Metric(checks.Metric{Name: "cloudflare_gateway_rules_total", Value: float64(section.RulesTotal)})
		}
	}

	var summaryParts []string
	if provider != "unknown" {
		summaryParts = append(summaryParts, fmt.Sprintf("Provider: %s", provider))
	}
	if tag != "unknown" {
		summaryParts = append(summaryParts, fmt.Sprintf("Tag: %s", tag))
	}
	if section.RulesTotal > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("Rules: %d", section.RulesTotal))
	}
	if len(summaryParts) == 0 {
		summaryParts = append(summaryParts, "Gateway configured")
	}
	out.Result(checks.Result{State: checks.StateOK, Summary: strings.Join(summaryParts, " | ")})

	if len(section.Actions) > 0 {
		actions := make([]string, 0, len(section.Actions))
		for action := range section.Actions {
			actions = append(actions, action)
		}
		sort.Strings(actions)
		details := make([]string, 0, len(actions))
		for _, action := range actions {
			count := section.Actions[action]
			details = append(details, fmt.Sprintf("%s: %d", strings.Title(action), count))
			if count >= 0 {
				out.Metric(checks.Metric{Name: "cloudflare_gateway_rules_" + action, Value: float64(count)})
			}
		}
		out.Result(checks.Result{State: checks.StateOK, Notice: strings.Join(details, " | ")})
	}
}

func init() {
	checks.RegisterSection(&checks.AgentSection{Name: SectionName, Parse: Parse})
	checks.RegisterPlugin(&checks.Plugin{
		Name:     "cloudflare_gateway",
		Section:  SectionName,
		Service:  "Cloudflare Gateway %s",
		Ruleset:  "cloudflare_gateway",
		Discover: Discover,
		Check:    Check,
		Defaults: func() checks.Params { return checks.Params{} },
	})
}
