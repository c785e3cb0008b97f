package checks

import (
	"fmt"
	"sort"
)

// ParseFunc turns the raw lines of one agent section into the section's
// typed model.  It never fails; malformed lines are skipped.
type ParseFunc func(lines []string) interface{}

// AgentSection binds a section name to its parse function.
type AgentSection struct {
	Name  string
	Parse ParseFunc
}

// Plugin describes one check: which section it consumes, how services are
// discovered and how one service is evaluated.
type Plugin struct {
	Name string
	// Section is the agent section this plugin consumes.
	Section string
	// Service is the service name template; %s is replaced by the item.
	Service string
	// Ruleset names the parameter schema applying to this plugin, empty
	// for checks without parameters.
	Ruleset  string
	Discover func(parsed interface{}) []Service
	Check    func(item string, params Params, parsed interface{}, out Output)
	// Defaults returns a fresh copy of the default parameters.
	Defaults func() Params
}

// ServiceName renders the service name for an item.
func (p *Plugin) ServiceName(item string) string {
	if item == "" {
		return p.Service
	}
	return fmt.Sprintf(p.Service, item)
}

var agentSections = map[string]*AgentSection{}
var plugins = map[string]*Plugin{}

// RegisterSection registers a section parser, to be called from the check
// package's init.  Re-registering a name panics since it means conflicting
// code is linked in.
func RegisterSection(s *AgentSection) {
	if _, ok := agentSections[s.Name]; ok {
		panic("section " + s.Name + " already registered")
	}
	agentSections[s.Name] = s
}

// RegisterPlugin registers a check plugin, to be called from init.
func RegisterPlugin(p *Plugin) {
	if _, ok := plugins[p.Name]; ok {
		panic("plugin " + p.Name + " already registered")
	}
	if _, ok := agentSections[p.Section]; !ok {
		panic("plugin " + p.Name + " consumes unregistered section " + p.Section)
	}
	plugins[p.Name] = p
}

// SectionByName looks up a registered section parser.
func SectionByName(name string) *AgentSection {
	return agentSections[name]
}

// PluginByName looks up a registered plugin.
func PluginByName(name string) *Plugin {
	return plugins[name]
}

// Plugins returns all registered plugins sorted by name.
func Plugins() []*Plugin {
	names := make([]string, 0, len(plugins))
	for name := range plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Plugin, 0, len(names))
	for _, name := range names {
		out = append(out, plugins[name])
	}
	return out
}
