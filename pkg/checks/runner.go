package checks

import (
	"bufio"
	"strings"
)

// SplitSections splits raw agent output into per-section line lists keyed
// by section name.  Text before the first marker is ignored; a section
// appearing twice has its lines concatenated.
func SplitSections(raw string) map[string][]string {
	out := map[string][]string{}
	current := ""
	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "<<<") && strings.HasSuffix(line, ">>>") {
			current = strings.TrimSuffix(strings.TrimPrefix(line, "<<<"), ">>>")
			if _, ok := out[current]; !ok && current != "" {
				out[current] = []string{}
			}
			continue
		}
		if current == "" || line == "" {
			continue
		}
		out[current] = append(out[current], line)
	}
	return out
}

// DiscoveredService pairs a plugin with one of its discovered services.
type DiscoveredService struct {
	Plugin  *Plugin
	Service Service
}

// parseSection runs the registered parser of a plugin's section, or nil
// when the section is absent from the output.
func parseSection(p *Plugin, sectionLines map[string][]string) interface{} {
	lines, ok := sectionLines[p.Section]
	if !ok {
		return nil
	}
	return SectionByName(p.Section).Parse(lines)
}

// Discover runs discovery of every registered plugin against the given
// output.  Plugins whose section is absent contribute no services.
func Discover(sectionLines map[string][]string) []DiscoveredService {
	var discovered []DiscoveredService
	for _, p := range Plugins() {
		parsed := parseSection(p, sectionLines)
		if parsed == nil {
			continue
		}
		for _, service := range p.Discover(parsed) {
			discovered = append(discovered, DiscoveredService{Plugin: p, Service: service})
		}
	}
	return discovered
}

// Rules maps plugin name to per-item parameters; the "" item configures
// itemless services.  Values overlay the plugin's defaults.
type Rules map[string]map[string]Params

// paramsFor merges the configured params of one service over the plugin
// defaults.
func (r Rules) paramsFor(p *Plugin, item string) Params {
	defaults := Params{}
	if p.Defaults != nil {
		defaults = p.Defaults()
	}
	if byItem, ok := r[p.Name]; ok {
		if params, ok := byItem[item]; ok {
			return params.Merged(defaults)
		}
	}
	return defaults
}

// CheckResult is the evaluated outcome of one service.
type CheckResult struct {
	Plugin      string
	Item        string
	ServiceName string
	State       State
	Results     []Result
	Metrics     []Metric
}

// Run discovers and checks every service in the output, applying the given
// rules.
func Run(sectionLines map[string][]string, rules Rules) []CheckResult {
	var results []CheckResult
	for _, p := range Plugins() {
		parsed := parseSection(p, sectionLines)
		if parsed == nil {
			continue
		}
		for _, service := range p.Discover(parsed) {
			acc := &Accumulator{}
			p.Check(service.Item, rules.paramsFor(p, service.Item), parsed, acc)
			results = append(results, CheckResult{
				Plugin:      p.Name,
				Item:        service.Item,
				ServiceName: p.ServiceName(service.Item),
				State:       acc.State(),
				Results:     acc.Results,
				Metrics:     acc.Metrics,
			})
		}
	}
	return results
}
