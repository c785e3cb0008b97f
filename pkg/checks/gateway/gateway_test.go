package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynxmind/cloudflare-agent/pkg/checks"
)

var sampleLines = []string{
	"gateway.account.provider=Cloudflare",
	"gateway.account.tag=gw-tag-1",
	"gateway.rules_total=12",
	"gateway.rules_action.block=8",
	"gateway.rules_action.allow=4",
}

func TestParse(t *testing.T) {
	parsed := Parse(sampleLines)
	require.NotNil(t, parsed)
	section := parsed.(*Section)
	assert.Equal(t, "Cloudflare", section.Account["provider"])
	assert.Equal(t, int64(12), section.RulesTotal)
	assert.Equal(t, int64(8), section.Actions["block"])
}

func TestDiscoverSingleService(t *testing.T) {
	services := Discover(Parse(sampleLines))
	require.Len(t, services, 1)
	assert.Equal(t, "gateway", services[0].Item)

	// Even an empty section yields the one service.
	services = Discover(Parse(nil))
	require.Len(t, services, 1)
}

func TestCheck(t *testing.T) {
	acc := &checks.Accumulator{}
	Check("gateway", checks.Params{}, Parse(sampleLines), acc)

	assert.Equal(t, checks.StateOK, acc.State())
	assert.Equal(t, "Provider: Cloudflare | Tag: gw-tag-1 | Rules: 12", acc.Results[0].Summary)
	require.Len(t, acc.Results, 2)
	assert.Equal(t, "Allow: 4 | Block: 8", acc.Results[1].Notice)

	names := map[string]float64{}
	for _, m := range acc.Metrics {
		names[m.Name] = m.Value
	}
	assert.Equal(t, 12.0, names["cloudflare_gateway_rules_total"])
	assert.Equal(t, 8.0, names["cloudflare_gateway_rules_block"])
	assert.Equal(t, 4.0, names["cloudflare_gateway_rules_allow"])
}

func TestCheckRulesLevels(t *testing.T) {
	acc := &checks.Accumulator{}
	Check("gateway", checks.Params{"rules_total": []interface{}{10, 20}}, Parse(sampleLines), acc)
	assert.Equal(t, checks.StateWarn, acc.State())
}

func TestCheckEmptySection(t *testing.T) {
	acc := &checks.Accumulator{}
	Check("gateway", checks.Params{}, Parse(nil), acc)

	assert.Equal(t, checks.StateOK, acc.State())
	assert.Equal(t, "Gateway configured", acc.Results[0].Summary)
	require.Len(t, acc.Metrics, 1)
	assert.Equal(t, 0.0, acc.Metrics[0].Value)
}
