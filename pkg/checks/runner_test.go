package checks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A minimal echo plugin: one service per key, WARN when the configured
// "warn_on" value matches.
func init() {
	RegisterSection(&AgentSection{
		Name: "echo_section",
		Parse: func(lines []string) interface{} {
			parsed := map[string]string{}
			for _, line := range lines {
				if key, value, ok := SplitLine(line); ok {
					parsed[key] = value
				}
			}
			if len(parsed) == 0 {
				return nil
			}
			return parsed
		},
	})
	RegisterPlugin(&Plugin{
		Name:    "echo",
		Section: "echo_section",
		Service: "Echo %s",
		Discover: func(parsed interface{}) []Service {
			section := parsed.(map[string]string)
			items := make([]string, 0, len(section))
			for item := range section {
				items = append(items, item)
			}
			// Map order is fine for tests that sort afterwards.
			services := make([]Service, 0, len(items))
			for _, item := range items {
				services = append(services, Service{Item: item})
			}
			return services
		},
		Check: func(item string, params Params, parsed interface{}, out Output) {
			section := parsed.(map[string]string)
			value, ok := section[item]
			if !ok {
				out.Result(Result{State: StateUnknown, Summary: "item vanished"})
				return
			}
			state := StateOK
			if params.String("warn_on", "") == value {
				state = StateWarn
			}
			out.Result(Result{State: state, Summary: "value: " + value})
		},
		Defaults: func() Params { return Params{} },
	})
}

func TestRegistryLookups(t *testing.T) {
	assert.NotNil(t, SectionByName("echo_section"))
	assert.Nil(t, SectionByName("no_such_section"))

	plugin := PluginByName("echo")
	require.NotNil(t, plugin)
	assert.Equal(t, "Echo thing", plugin.ServiceName("thing"))

	assert.Panics(t, func() {
		RegisterSection(&AgentSection{Name: "echo_section"})
	})
	assert.Panics(t, func() {
		RegisterPlugin(&Plugin{Name: "orphan", Section: "no_such_section"})
	})
}

func TestDiscoverSkipsAbsentSections(t *testing.T) {
	discovered := Discover(map[string][]string{})
	for _, d := range discovered {
		assert.NotEqual(t, "echo", d.Plugin.Name)
	}

	discovered = Discover(map[string][]string{
		"echo_section": {"a=1", "b=2"},
	})
	var items []string
	for _, d := range discovered {
		if d.Plugin.Name == "echo" {
			items = append(items, d.Service.Item)
		}
	}
	assert.ElementsMatch(t, []string{"a", "b"}, items)
}

func TestRunAppliesRules(t *testing.T) {
	sectionLines := map[string][]string{
		"echo_section": {"a=bad", "b=fine"},
	}
	rules := Rules{
		"echo": {"a": Params{"warn_on": "bad"}},
	}

	byItem := map[string]CheckResult{}
	for _, res := range Run(sectionLines, rules) {
		if res.Plugin == "echo" {
			byItem[res.Item] = res
		}
	}
	require.Len(t, byItem, 2)
	assert.Equal(t, StateWarn, byItem["a"].State)
	assert.Equal(t, StateOK, byItem["b"].State)
	assert.Equal(t, "Echo a", byItem["a"].ServiceName)
	require.Len(t, byItem["a"].Results, 1)
	assert.True(t, strings.HasPrefix(byItem["a"].Results[0].Summary, "value:"))
}

func TestRulesParamsFor(t *testing.T) {
	plugin := PluginByName("echo")
	rules := Rules{"echo": {"a": Params{"warn_on": "x"}}}

	params := rules.paramsFor(plugin, "a")
	assert.Equal(t, "x", params.String("warn_on", ""))

	params = rules.paramsFor(plugin, "unconfigured")
	assert.Empty(t, params.String("warn_on", ""))
}
