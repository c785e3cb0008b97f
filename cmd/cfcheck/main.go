// cfcheck evaluates Cloudflare agent output on the monitoring host: it
// parses the section blocks, discovers services and runs every check,
// applying per-service parameters from an optional YAML rules file.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
	"github.com/lynxmind/cloudflare-agent/pkg/rulesets"

	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	_ "github.com/lynxmind/cloudflare-agent/pkg/checks/accessapps"
	_ "github.com/lynxmind/cloudflare-agent/pkg/checks/cdncache"
	_ "github.com/lynxmind/cloudflare-agent/pkg/checks/d1"
	_ "github.com/lynxmind/cloudflare-agent/pkg/checks/dns"
	_ "github.com/lynxmind/cloudflare-agent/pkg/checks/firewall"
	_ "github.com/lynxmind/cloudflare-agent/pkg/checks/gateway"
	_ "github.com/lynxmind/cloudflare-agent/pkg/checks/pages"
	_ "github.com/lynxmind/cloudflare-agent/pkg/checks/secrets"
	_ "github.com/lynxmind/cloudflare-agent/pkg/checks/ssltls"
	_ "github.com/lynxmind/cloudflare-agent/pkg/checks/warpdevices"
	_ "github.com/lynxmind/cloudflare-agent/pkg/checks/workers"
)

func init() {
	log.SetFormatter(&prefixed.TextFormatter{})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
}

func main() {
	rulesPath := flag.String("rules", "", "YAML rules file: plugin -> item -> parameters")
	discover := flag.Bool("discover", false, "list discovered services instead of checking")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	raw, err := readInput(flag.Arg(0))
	if err != nil {
		log.WithError(err).Error("Could not read agent output")
		os.Exit(3)
	}

	rules, err := loadRules(*rulesPath)
	if err != nil {
		log.WithError(err).Error("Could not load rules")
		os.Exit(3)
	}

	sectionLines := checks.SplitSections(string(raw))

	if *discover {
		for _, d := range checks.Discover(sectionLines) {
			fmt.Println(d.Plugin.ServiceName(d.Service.Item))
		}
		return
	}

	worst := checks.StateOK
	for _, res := range checks.Run(sectionLines, rules) {
		worst = worst.Worst(res.State)
		printResult(res)
	}
	os.Exit(int(worst))
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(path)
}

// loadRules reads the rules file and sanity-checks the parameter keys
// against the declared ruleset of each plugin.
func loadRules(path string) (checks.Rules, error) {
	rules := checks.Rules{}
	if path == "" {
		return rules, nil
	}
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, err
	}

	for pluginName, byItem := range rules {
		plugin := checks.PluginByName(pluginName)
		if plugin == nil {
			log.WithField("plugin", pluginName).Warn("Rules reference an unknown plugin")
			continue
		}
		ruleset := rulesets.ByName(plugin.Ruleset)
		if ruleset == nil {
			continue
		}
		for item, params := range byItem {
			if err := ruleset.Form.Validate(params); err != nil {
				return nil, fmt.Errorf("rules for %s %q: %v", pluginName, item, err)
			}
		}
	}
	return rules, nil
}

func printResult(res checks.CheckResult) {
	var summaries, notices []string
	for _, r := range res.Results {
		if r.Summary != "" {
			summaries = append(summaries, r.Summary)
		}
		if r.Notice != "" {
			notices = append(notices, r.Notice)
		}
	}

	line := fmt.Sprintf("%s - %s", res.State, res.ServiceName)
	if len(summaries) > 0 {
		line += ": " + strings.Join(summaries, ", ")
	}
	if len(res.Metrics) > 0 {
		perf := make([]string, 0, len(res.Metrics))
		for _, m := range res.Metrics {
			entry := fmt.Sprintf("%s=%g", m.Name, m.Value)
			if m.Levels != nil {
				entry += fmt.Sprintf(";%g;%g", m.Levels.Warn, m.Levels.Crit)
			}
			perf = append(perf, entry)
		}
		line += " | " + strings.Join(perf, " ")
	}
	fmt.Println(line)

	for _, notice := range notices {
		fmt.Println("  " + notice)
	}
}
