package rulesets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclarationsRegistered(t *testing.T) {
	expected := []string{
		"cloudflare_access_apps",
		"cloudflare_cdn_cache",
		"cloudflare_d1",
		"cloudflare_dns",
		"cloudflare_firewall",
		"cloudflare_gateway",
		"cloudflare_pages",
		"cloudflare_secrets",
		"cloudflare_ssl_tls",
		"cloudflare_warp_devices",
		"cloudflare_workers",
	}
	assert.Equal(t, expected, Names())

	for _, name := range expected {
		require.NotNil(t, ByName(name), name)
	}
	assert.Nil(t, ByName("no_such_ruleset"))
}

func TestCDNCacheForm(t *testing.T) {
	ruleset := ByName("cloudflare_cdn_cache")
	require.NotNil(t, ruleset)
	assert.Equal(t, []string{
		"bandwidth_total", "cache_hit_rate", "cache_level_crit",
		"cache_level_warn", "cached_requests", "requests_total",
	}, ruleset.Form.Keys())

	hitRate := ruleset.Form.element("cache_hit_rate")
	require.NotNil(t, hitRate)
	levels, ok := hitRate.Form.(SimpleLevels)
	require.True(t, ok)
	assert.Equal(t, Lower, levels.Direction)
	assert.Equal(t, [2]float64{70, 50}, levels.Prefill)

	warn := ruleset.Form.element("cache_level_warn")
	require.NotNil(t, warn)
	choice, ok := warn.Form.(SingleChoice)
	require.True(t, ok)
	assert.Equal(t, "none", choice.Prefill)
	assert.Contains(t, choice.Choices, "aggressive")
}

func TestValidate(t *testing.T) {
	form := ByName("cloudflare_dns").Form

	assert.NoError(t, form.Validate(nil))
	assert.NoError(t, form.Validate(map[string]interface{}{
		"dns_records_total": []interface{}{100, 500},
	}))

	err := form.Validate(map[string]interface{}{"typo_key": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo_key")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(&CheckParameters{Name: "cloudflare_dns"})
	})
}

func TestSpecialAgentForm(t *testing.T) {
	form := SpecialAgentForm()

	email := form.element("email")
	require.NotNil(t, email)
	assert.True(t, email.Required)

	token := form.element("api_token")
	require.NotNil(t, token)
	assert.True(t, token.Required)
	_, isPassword := token.Form.(Password)
	assert.True(t, isPassword)

	timeout := form.element("timeout")
	require.NotNil(t, timeout)
	integer, ok := timeout.Form.(Integer)
	require.True(t, ok)
	assert.Equal(t, 30, integer.Prefill)
	assert.Equal(t, 1, integer.Min)
	assert.Equal(t, 300, integer.Max)

	for _, key := range []string{
		"cdn_cache", "dns", "ssl_tls", "firewall", "workers_pages",
		"d1", "secrets", "devices", "apps", "gateway", "analytics",
		"fetch_all", "verbose",
	} {
		element := form.element(key)
		require.NotNil(t, element, key)
		_, isBool := element.Form.(BooleanChoice)
		assert.True(t, isBool, key)
	}
}
